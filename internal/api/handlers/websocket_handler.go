package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/services"
	ws "github.com/gatherly/gatherly-be/internal/websocket"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades HTTP connections to WebSocket connections for
// real-time notification delivery.
type WebSocketHandler struct {
	hub           *ws.Hub
	tokens        *auth.Tokens
	notifications services.NotificationServiceProvider
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, tokens *auth.Tokens, notifications services.NotificationServiceProvider) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tokens: tokens, notifications: notifications}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS middleware already constrains browser origins.
		return true
	},
}

// Serve handles the WebSocket connection request. Browsers cannot set an
// Authorization header on the upgrade request, so a token query parameter
// is accepted as a fallback.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		if tokenStr := r.URL.Query().Get("token"); tokenStr != "" {
			parsed, err := h.tokens.Validate(tokenStr)
			if err == nil {
				claims = parsed
				ok = true
			}
		}
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register <- client

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(h.handleIncomingWSMessage)
	}()

	// Cleanup on disconnect.
	go func() {
		wg.Wait()
		h.hub.Unregister <- client
	}()
}

// handleIncomingWSMessage processes messages received from a websocket client.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}

	switch msg.Action {
	case "mark_read":
		payload, ok := msg.Payload.(map[string]interface{})
		if !ok {
			client.Send <- ws.NewErrorMessage("Invalid payload for mark_read")
			return
		}
		id, ok := payload["id"].(string)
		if !ok || id == "" {
			client.Send <- ws.NewErrorMessage("Missing notification id")
			return
		}
		if err := h.notifications.MarkRead(client.UserID, id); err != nil {
			client.Send <- ws.NewErrorMessage(err.Error())
		}

	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		client.Send <- ws.NewErrorMessage("Unknown action: " + msg.Action)
	}
}
