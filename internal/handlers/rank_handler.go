package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/Fluxpuck/sero-backend/internal/httpx"
	"github.com/Fluxpuck/sero-backend/internal/service"
	"github.com/Fluxpuck/sero-backend/internal/storage"
	"github.com/Fluxpuck/sero-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RankHandler struct {
	rankService *service.RankService
}

func NewRankHandler(rankService *service.RankService) *RankHandler {
	return &RankHandler{rankService: rankService}
}

func rankParams(c *fiber.Ctx) (string, int, error) {
	guildID := validation.NormalizeID(c.Params("guildId"))
	if !validation.ValidateSnowflake(guildID) {
		return "", 0, errors.New("invalid guild")
	}
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil || level < 1 {
		return "", 0, errors.New("invalid level")
	}
	return guildID, level, nil
}

type SetRankRequest struct {
	RoleID string `json:"role_id"`
}

func (h *RankHandler) SetRank(c *fiber.Ctx) error {
	guildID, level, err := rankParams(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_params", err.Error())
	}

	var req SetRankRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_body", "Invalid request body")
	}
	roleID := validation.NormalizeID(req.RoleID)
	if !validation.ValidateSnowflake(roleID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid role identifier")
	}

	rank, err := h.rankService.SetRank(guildID, level, roleID)
	if err != nil {
		return httpx.Internal(c, "rank_write_failed")
	}
	return c.Status(fiber.StatusCreated).JSON(rank)
}

func (h *RankHandler) RemoveRank(c *fiber.Ctx) error {
	guildID, level, err := rankParams(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_params", err.Error())
	}

	if err := h.rankService.RemoveRank(guildID, level); err != nil {
		return httpx.Internal(c, "rank_delete_failed")
	}
	return c.JSON(fiber.Map{"message": "Rank removed"})
}

func (h *RankHandler) ListRanks(c *fiber.Ctx) error {
	guildID := validation.NormalizeID(c.Params("guildId"))
	if !validation.ValidateSnowflake(guildID) {
		return httpx.BadRequest(c, "invalid_id", "Invalid guild identifier")
	}

	ranks, err := h.rankService.ListRanks(guildID)
	if err != nil {
		return httpx.Internal(c, "rank_list_failed")
	}
	return c.JSON(ranks)
}

// UploadBadge accepts a multipart image upload for a rank threshold.
func (h *RankHandler) UploadBadge(c *fiber.Ctx) error {
	guildID, level, err := rankParams(c)
	if err != nil {
		return httpx.BadRequest(c, "invalid_params", err.Error())
	}

	file, err := c.FormFile("badge")
	if err != nil {
		return httpx.BadRequest(c, "missing_file", "Badge file is required")
	}
	f, err := file.Open()
	if err != nil {
		return httpx.BadRequest(c, "invalid_file", "Could not read upload")
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, storage.BadgeMaxBytes+1))
	if err != nil {
		return httpx.BadRequest(c, "invalid_file", "Could not read upload")
	}

	key, err := h.rankService.UploadBadge(c.Context(), guildID, level, raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageNotConfigured):
			return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httpx.NotFound(c, "rank_not_found", "No such rank threshold")
		default:
			return httpx.BadRequest(c, "invalid_image", "Could not process badge image")
		}
	}
	return c.JSON(fiber.Map{"badge": key})
}
