package handler

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"threadbox/internal/domain"
	"threadbox/internal/service/auth"
	"threadbox/internal/ws"
)

type WSHandler struct {
	hub         *ws.Hub
	authService auth.Service
}

func NewWSHandler(hub *ws.Hub, authService auth.Service) *WSHandler {
	return &WSHandler{hub: hub, authService: authService}
}

// UpgradeRequired gates the websocket route: plain HTTP requests get 426.
func (h *WSHandler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve performs the one-time authentication handshake and then pins the
// connection to the user's channel until it closes. The credential comes
// from the handshake query string since browsers cannot set headers on
// websocket upgrades.
func (h *WSHandler) Serve(conn *websocket.Conn) {
	token := conn.Query("token")
	userID, err := h.authService.VerifyCredential(token)
	if err != nil {
		conn.WriteJSON(domain.Event{
			Type:    domain.EventError,
			Payload: fiber.Map{"message": "invalid credential"},
		})
		conn.Close()
		return
	}

	client := ws.NewClient(conn)
	h.hub.Register(userID, client)
	defer h.hub.Unregister(client)

	go client.WritePump()

	client.Send(domain.Event{
		Type:    domain.EventConnected,
		Payload: fiber.Map{"user_id": userID},
	})
	log.Printf("ws: user %s connected", userID)

	// Read loop: nothing is required from the client beyond the handshake;
	// a ping/pong liveness pair is answered when offered.
	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("ws: user %s disconnected", userID)
			return
		}
		if msg.Type == "ping" {
			client.Send(domain.Event{Type: domain.EventPong})
		}
	}
}
