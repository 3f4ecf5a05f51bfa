package handlers

import (
	"errors"

	"github.com/Fluxpuck/sero-backend/internal/httpx"
	"github.com/Fluxpuck/sero-backend/internal/service"
	"github.com/Fluxpuck/sero-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LevelHandler struct {
	levelService *service.LevelService
	guildService *service.GuildService
}

func NewLevelHandler(levelService *service.LevelService, guildService *service.GuildService) *LevelHandler {
	return &LevelHandler{levelService: levelService, guildService: guildService}
}

// ids pulls and validates the guild and user snowflakes from the path.
func ids(c *fiber.Ctx) (string, string, error) {
	guildID := validation.NormalizeID(c.Params("guildId"))
	userID := validation.NormalizeID(c.Params("userId"))
	if !validation.ValidateSnowflake(guildID) || !validation.ValidateSnowflake(userID) {
		return "", "", errors.New("invalid identifiers")
	}
	return guildID, userID, nil
}

func (h *LevelHandler) Gain(c *fiber.Ctx) error {
	guildID, userID, err := ids(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild or user identifier")
	}

	if err := h.guildService.Ensure(guildID); err != nil {
		return httpx.Internal(c, "guild_ensure_failed")
	}

	result, err := h.levelService.Gain(guildID, userID)
	if err != nil {
		return httpx.Internal(c, "gain_failed")
	}
	return c.JSON(result)
}

type ClaimRequest struct {
	Amount    int64 `json:"amount"`
	MinAmount int64 `json:"min_amount"`
	MaxAmount int64 `json:"max_amount"`
}

func (h *LevelHandler) Claim(c *fiber.Ctx) error {
	guildID, userID, err := ids(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild or user identifier")
	}

	var req ClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if req.Amount <= 0 && !validation.ValidateAmountRange(req.MinAmount, req.MaxAmount) {
		return httpx.BadRequest(c, "invalid_amount", "Claim requires an amount or a valid range")
	}

	// Claims are a premium entitlement; the engine itself does not
	// check it, so the gate lives here.
	premium, err := h.guildService.IsPremium(guildID)
	if err != nil {
		return httpx.Internal(c, "guild_lookup_failed")
	}
	if !premium {
		return httpx.NotFound(c, "not_entitled", "Guild has no claim entitlement")
	}

	result, err := h.levelService.Claim(guildID, userID, req.Amount, req.MinAmount, req.MaxAmount)
	if err != nil {
		return httpx.Internal(c, "claim_failed")
	}
	return c.JSON(result)
}

type AddRequest struct {
	Delta int64 `json:"delta"`
}

func (h *LevelHandler) Add(c *fiber.Ctx) error {
	guildID, userID, err := ids(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild or user identifier")
	}

	var req AddRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	if req.Delta == 0 {
		return httpx.BadRequest(c, "invalid_delta", "Delta must be non-zero")
	}

	result, err := h.levelService.Add(guildID, userID, req.Delta)
	if err != nil {
		return httpx.Internal(c, "set_failed")
	}
	return c.JSON(result)
}

func (h *LevelHandler) Reset(c *fiber.Ctx) error {
	guildID, userID, err := ids(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild or user identifier")
	}

	result, err := h.levelService.Reset(guildID, userID)
	if err != nil {
		return httpx.Internal(c, "reset_failed")
	}
	return c.JSON(result)
}

func (h *LevelHandler) Get(c *fiber.Ctx) error {
	guildID, userID, err := ids(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild or user identifier")
	}

	record, err := h.levelService.Get(guildID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpx.NotFound(c, "not_found", "No progression record")
		}
		return httpx.Internal(c, "lookup_failed")
	}
	return c.JSON(record)
}

func (h *LevelHandler) ResetGuild(c *fiber.Ctx) error {
	guildID := validation.NormalizeID(c.Params("guildId"))
	if !validation.ValidateSnowflake(guildID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild identifier")
	}

	count, err := h.levelService.ResetGuild(guildID)
	if err != nil {
		return httpx.Internal(c, "guild_reset_failed")
	}
	return c.JSON(fiber.Map{"reset": count})
}
