package handlers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/Fluxpuck/sero-backend/internal/httpx"
	"github.com/Fluxpuck/sero-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

type MediaHandler struct {
	s3 *storage.S3Storage
}

func NewMediaHandler(s3 *storage.S3Storage) *MediaHandler {
	return &MediaHandler{s3: s3}
}

// GetBadge streams a stored rank badge.
func (h *MediaHandler) GetBadge(c *fiber.Ctx) error {
	if h.s3 == nil {
		return httpx.Error(c, fiber.StatusServiceUnavailable, "storage_not_configured", "Storage not configured")
	}

	key, err := storage.SafeJoinBadgePath(strings.TrimSpace(c.Params("*")))
	if err != nil {
		return httpx.NotFound(c, "not_found", "Not found")
	}

	obj, st, err := h.s3.GetObject(c.Context(), key)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && (resp.StatusCode == 404 || resp.Code == "NoSuchKey") {
			return httpx.NotFound(c, "not_found", "Not found")
		}
		return httpx.Internal(c, "media_fetch_failed")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return httpx.Internal(c, "media_fetch_failed")
	}

	c.Set("Content-Type", st.ContentType)
	c.Set("Content-Length", strconv.FormatInt(st.Size, 10))
	c.Set("Cache-Control", "public, max-age=3600")
	return c.Send(data)
}
