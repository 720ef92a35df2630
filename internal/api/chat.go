package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/internal/news"
	"sports-lore-chatbot/backend/internal/service"
	"sports-lore-chatbot/backend/pkg/errors"
	"sports-lore-chatbot/backend/pkg/logger"
)

const defaultHistoryLimit = 50

// ChatController handles the chat stream, news check, and history endpoints
type ChatController struct {
	chatService    *service.ChatService
	historyService *service.HistoryService
	newsClient     *news.Client
	log            *logger.Logger
}

// NewChatController creates a new chat controller
func NewChatController(chatService *service.ChatService, historyService *service.HistoryService, newsClient *news.Client, log *logger.Logger) *ChatController {
	return &ChatController{
		chatService:    chatService,
		historyService: historyService,
		newsClient:     newsClient,
		log:            log,
	}
}

// RegisterRoutes registers the routes for the chat controller
func (c *ChatController) RegisterRoutes(router *gin.Engine) {
	chatGroup := router.Group("/api/chat")
	{
		chatGroup.POST("/stream", c.StreamChat)
		chatGroup.POST("/check-news", c.CheckNews)
		chatGroup.GET("/history/:userId", c.GetHistory)
		chatGroup.DELETE("/history/:userId", c.ClearHistory)
	}
}

// StreamChat runs the chat pipeline and relays its events as an SSE stream.
// Each frame is a JSON object with a "type" of start, token, clip, done, or
// error.
func (c *ChatController) StreamChat(ctx *gin.Context) {
	var req models.ChatMessage
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.UserID == "" {
		req.UserID = "default_user"
	}

	c.log.Info("chat stream request",
		"user_id", req.UserID,
		"message_len", len(req.Message),
	)

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Header().Set("X-Accel-Buffering", "no")
	ctx.Writer.WriteHeader(http.StatusOK)
	ctx.Writer.Flush()

	// The request context is cancelled when the client disconnects, which
	// aborts in-flight provider calls inside the pipeline.
	events := c.chatService.Stream(ctx.Request.Context(), req)
	for event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			c.log.LogError(err, "failed to marshal stream event")
			continue
		}
		fmt.Fprintf(ctx.Writer, "data: %s\n\n", data)
		ctx.Writer.Flush()
	}
}

// CheckNews reports whether there is important news worth proactively sharing
func (c *ChatController) CheckNews(ctx *gin.Context) {
	var prefs models.UserPreferences
	if err := ctx.BindJSON(&prefs); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences format"})
		return
	}

	shouldNotify, items := c.newsClient.ShouldNotify(ctx.Request.Context(), prefs)
	if items == nil {
		items = []models.NewsItem{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"should_notify": shouldNotify,
		"news_count":    len(items),
		"news_items":    items,
	})
}

// GetHistory returns the recent transcript for a user, chronological order
func (c *ChatController) GetHistory(ctx *gin.Context) {
	userID := ctx.Param("userId")

	limit := defaultHistoryLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := c.historyService.ConversationHistory(ctx.Request.Context(), userID, limit)
	if err != nil {
		ctx.Error(errors.NewInternalServerError("HISTORY_READ_FAILED", "Failed to fetch chat history"))
		return
	}

	formatted := make([]gin.H, len(messages))
	for i, msg := range messages {
		entry := gin.H{
			"role":       msg.Role,
			"content":    msg.Content,
			"created_at": msg.CreatedAt,
		}
		if clips := msg.ClipList(); clips != nil {
			entry["clips"] = clips
		}
		formatted[i] = entry
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"messages": formatted,
		"total":    len(formatted),
	})
}

// ClearHistory deletes all history for a user and returns the removed count
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	userID := ctx.Param("userId")

	deleted, err := c.historyService.ClearHistory(ctx.Request.Context(), userID)
	if err != nil {
		ctx.Error(errors.NewInternalServerError("HISTORY_PURGE_FAILED", "Failed to clear chat history"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user_id":       userID,
		"deleted_count": deleted,
		"status":        "success",
	})
}
