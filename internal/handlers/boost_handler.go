package handlers

import (
	"errors"

	"github.com/Fluxpuck/sero-backend/internal/httpx"
	"github.com/Fluxpuck/sero-backend/internal/service"
	"github.com/Fluxpuck/sero-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type BoostHandler struct {
	boostService *service.BoostService
}

func NewBoostHandler(boostService *service.BoostService) *BoostHandler {
	return &BoostHandler{boostService: boostService}
}

type SetBoostRequest struct {
	UserID          string `json:"user_id"`
	Multiplier      int    `json:"multiplier"`
	DurationSeconds *int64 `json:"duration_seconds"`
}

// SetBoost upserts a boost. An absent user_id targets the guild-wide
// modifier.
func (h *BoostHandler) SetBoost(c *fiber.Ctx) error {
	guildID := validation.NormalizeID(c.Params("guildId"))
	if !validation.ValidateSnowflake(guildID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild identifier")
	}

	var req SetBoostRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if !validation.ValidateMultiplier(req.Multiplier) {
		return httpx.BadRequest(c, "invalid_multiplier", "Multiplier must be between 1 and 10")
	}
	if !validation.ValidateDuration(req.DurationSeconds) {
		return httpx.BadRequest(c, "invalid_duration", "Duration must not be negative")
	}

	if req.UserID == "" {
		boost, err := h.boostService.SetGuildBoost(guildID, req.Multiplier, req.DurationSeconds)
		if err != nil {
			return boostError(c, err)
		}
		return c.JSON(boost)
	}

	userID := validation.NormalizeID(req.UserID)
	if !validation.ValidateSnowflake(userID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid user identifier")
	}
	boost, err := h.boostService.SetUserBoost(guildID, userID, req.Multiplier, req.DurationSeconds)
	if err != nil {
		return boostError(c, err)
	}
	return c.JSON(boost)
}

func (h *BoostHandler) GetEffective(c *fiber.Ctx) error {
	guildID := validation.NormalizeID(c.Params("guildId"))
	userID := validation.NormalizeID(c.Params("userId"))
	if !validation.ValidateSnowflake(guildID) || !validation.ValidateSnowflake(userID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild or user identifier")
	}

	mult, err := h.boostService.Effective(guildID, userID)
	if err != nil {
		return httpx.Internal(c, "boost_lookup_failed")
	}
	return c.JSON(fiber.Map{"multiplier": mult})
}

func boostError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrInvalidMultiplier) {
		return httpx.BadRequest(c, "invalid_multiplier", err.Error())
	}
	return httpx.Internal(c, "boost_write_failed")
}
