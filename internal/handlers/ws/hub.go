package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// ClientConnection wraps a WebSocket connection subscribed to one
// guild's level-up feed.
type ClientConnection struct {
	Conn       *websocket.Conn
	GuildID    string
	LastPong   time.Time
	PingTicker *time.Ticker
	CloseChan  chan struct{}

	writeMux sync.Mutex
}

// Hub manages all active feed connections, keyed by guild.
type Hub struct {
	clients      map[*websocket.Conn]*ClientConnection
	clientsMux   sync.RWMutex
	pingInterval time.Duration
	pongTimeout  time.Duration
}

func NewHub() *Hub {
	hub := &Hub{
		clients:      make(map[*websocket.Conn]*ClientConnection),
		pingInterval: 30 * time.Second,
		pongTimeout:  90 * time.Second,
	}

	go hub.connectionHealthChecker()

	return hub
}

// Register adds a feed subscriber with health monitoring.
func (h *Hub) Register(guildID string, conn *websocket.Conn) {
	client := &ClientConnection{
		Conn:       conn,
		GuildID:    guildID,
		LastPong:   time.Now(),
		PingTicker: time.NewTicker(h.pingInterval),
		CloseChan:  make(chan struct{}),
	}

	conn.SetPongHandler(func(appData string) error {
		h.clientsMux.Lock()
		if c, exists := h.clients[conn]; exists {
			c.LastPong = time.Now()
		}
		h.clientsMux.Unlock()
		conn.SetReadDeadline(time.Now().Add(h.pongTimeout))
		return nil
	})
	conn.SetReadDeadline(time.Now().Add(h.pongTimeout))

	h.clientsMux.Lock()
	h.clients[conn] = client
	count := len(h.clients)
	h.clientsMux.Unlock()

	go h.pingRoutine(client)

	log.Printf("Feed subscriber joined for guild %s (total: %d)", guildID, count)
}

// Unregister removes a feed subscriber.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.clientsMux.Lock()
	if client, exists := h.clients[conn]; exists {
		if client.PingTicker != nil {
			client.PingTicker.Stop()
		}
		close(client.CloseChan)
		delete(h.clients, conn)
	}
	count := len(h.clients)
	h.clientsMux.Unlock()
	log.Printf("Feed subscriber left (total: %d)", count)
}

// Broadcast sends payload to every subscriber of the guild. Failed
// writes drop the connection; the health checker reaps it.
func (h *Hub) Broadcast(guildID string, payload []byte) {
	h.clientsMux.RLock()
	targets := make([]*ClientConnection, 0, len(h.clients))
	for _, client := range h.clients {
		if client.GuildID == guildID {
			targets = append(targets, client)
		}
	}
	h.clientsMux.RUnlock()

	for _, client := range targets {
		client.writeMux.Lock()
		err := client.Conn.WriteMessage(websocket.TextMessage, payload)
		client.writeMux.Unlock()
		if err != nil {
			log.Printf("Feed write failed for guild %s: %v", guildID, err)
			h.Unregister(client.Conn)
			client.Conn.Close()
		}
	}
}

func (h *Hub) pingRoutine(client *ClientConnection) {
	for {
		select {
		case <-client.PingTicker.C:
			client.writeMux.Lock()
			err := client.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
			client.writeMux.Unlock()
			if err != nil {
				h.Unregister(client.Conn)
				return
			}
		case <-client.CloseChan:
			return
		}
	}
}

// connectionHealthChecker reaps connections whose pong went silent.
func (h *Hub) connectionHealthChecker() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-h.pongTimeout)

		h.clientsMux.RLock()
		var stale []*websocket.Conn
		for conn, client := range h.clients {
			if client.LastPong.Before(cutoff) {
				stale = append(stale, conn)
			}
		}
		h.clientsMux.RUnlock()

		for _, conn := range stale {
			h.Unregister(conn)
			conn.Close()
		}
	}
}
