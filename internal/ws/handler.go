// Package ws exposes the chat pipeline over a websocket connection as an
// alternative to the SSE endpoint. Frames carry the same typed events.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/internal/service"
	"sports-lore-chatbot/backend/pkg/logger"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the router layer
		return true
	},
}

// Handler upgrades chat connections and relays pipeline events
type Handler struct {
	chatService *service.ChatService
	log         *logger.Logger
}

func NewHandler(chatService *service.ChatService, log *logger.Logger) *Handler {
	return &Handler{chatService: chatService, log: log.WithComponent("ws")}
}

// ServeChat upgrades the connection and handles chat requests until the
// client disconnects. Each inbound frame is one chat message; the response
// events stream back as JSON frames before the next request is read.
func (h *Handler) ServeChat(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.LogError(err, "websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req models.ChatMessage
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.LogError(err, "websocket read failed")
			}
			return
		}
		if req.UserID == "" {
			req.UserID = "default_user"
		}

		if !h.streamResponse(c.Request.Context(), conn, req) {
			return
		}
	}
}

// streamResponse relays one pipeline run, reporting false when the
// connection is no longer usable.
func (h *Handler) streamResponse(parent context.Context, conn *websocket.Conn, req models.ChatMessage) bool {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	events := h.chatService.Stream(ctx, req)
	for event := range events {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			h.log.LogError(err, "websocket write failed", "user_id", req.UserID)
			// Cancel the pipeline and drain so its goroutine exits
			cancel()
			for range events {
			}
			return false
		}
	}
	return true
}
