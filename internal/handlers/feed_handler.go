package handlers

import (
	"github.com/Fluxpuck/sero-backend/internal/handlers/ws"
	"github.com/Fluxpuck/sero-backend/internal/validation"
	"github.com/gofiber/websocket/v2"
)

// FeedHandler exposes the live level-up feed: dashboard clients
// subscribe per guild and receive the same payloads the bus carries.
type FeedHandler struct {
	hub *ws.Hub
}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{hub: ws.NewHub()}
}

// GetHub returns the hub so the bootstrap can pump bus messages into it.
func (h *FeedHandler) GetHub() *ws.Hub {
	return h.hub
}

func (h *FeedHandler) HandleFeed(c *websocket.Conn) {
	guildID := validation.NormalizeID(c.Query("guild_id"))
	if !validation.ValidateSnowflake(guildID) {
		c.Close()
		return
	}

	h.hub.Register(guildID, c)
	defer func() {
		h.hub.Unregister(c)
		c.Close()
	}()

	// Feed is one-way; drain reads so ping/pong keeps flowing and
	// disconnects surface.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
