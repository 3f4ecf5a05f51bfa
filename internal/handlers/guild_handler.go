package handlers

import (
	"errors"

	"github.com/Fluxpuck/sero-backend/internal/httpx"
	"github.com/Fluxpuck/sero-backend/internal/service"
	"github.com/Fluxpuck/sero-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type GuildHandler struct {
	guildService *service.GuildService
}

func NewGuildHandler(guildService *service.GuildService) *GuildHandler {
	return &GuildHandler{guildService: guildService}
}

func (h *GuildHandler) GetGuild(c *fiber.Ctx) error {
	guildID := validation.NormalizeID(c.Params("guildId"))
	if !validation.ValidateSnowflake(guildID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild identifier")
	}

	guild, err := h.guildService.Get(guildID)
	if err != nil {
		if errors.Is(err, service.ErrGuildNotFound) {
			return httpx.NotFound(c, "not_found", "Guild not registered")
		}
		return httpx.Internal(c, "guild_lookup_failed")
	}
	return c.JSON(guild)
}

type SetPremiumRequest struct {
	Premium bool `json:"premium"`
}

func (h *GuildHandler) SetPremium(c *fiber.Ctx) error {
	guildID := validation.NormalizeID(c.Params("guildId"))
	if !validation.ValidateSnowflake(guildID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild identifier")
	}

	var req SetPremiumRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}

	if err := h.guildService.SetPremium(guildID, req.Premium); err != nil {
		return httpx.Internal(c, "premium_update_failed")
	}
	return c.JSON(fiber.Map{"guild_id": guildID, "premium": req.Premium})
}
