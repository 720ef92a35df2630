package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sports-lore-chatbot/backend/ai"
	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/internal/repository"
	"sports-lore-chatbot/backend/pkg/logger"
)

// ErrInvalidMessage is returned when a turn fails validation before persist
var ErrInvalidMessage = errors.New("message role must be user or assistant and content non-empty")

// HistoryService manages the per-user conversation log
type HistoryService struct {
	repo repository.MessageRepository
	log  *logger.Logger
}

func NewHistoryService(repo repository.MessageRepository, log *logger.Logger) *HistoryService {
	return &HistoryService{repo: repo, log: log}
}

// AddMessage appends one turn to the user's log. Rows are immutable once
// written; there is no update path.
func (s *HistoryService) AddMessage(ctx context.Context, userID, role, content string, clips []models.ClipRef) (*models.Message, error) {
	if (role != models.RoleUser && role != models.RoleAssistant) || content == "" {
		return nil, ErrInvalidMessage
	}

	message := &models.Message{
		ExternalID: uuid.New().String(),
		UserID:     userID,
		Role:       role,
		Content:    content,
	}
	if err := message.SetClipList(clips); err != nil {
		return nil, fmt.Errorf("error serializing clips: %w", err)
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}
	s.log.Debug("message appended", "user_id", userID, "role", role)
	return message, nil
}

// ConversationHistory returns up to limit recent messages in chronological
// order, including clip attachments and timestamps.
func (s *HistoryService) ConversationHistory(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	messages, err := s.repo.GetRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	reverse(messages)
	return messages, nil
}

// ContextForLLM returns the recent window as bare role/content pairs, the
// projection sent to the completion provider.
func (s *HistoryService) ContextForLLM(ctx context.Context, userID string, maxMessages int) ([]ai.Message, error) {
	messages, err := s.ConversationHistory(ctx, userID, maxMessages)
	if err != nil {
		return nil, err
	}

	context := make([]ai.Message, len(messages))
	for i, msg := range messages {
		context[i] = ai.Message{Role: msg.Role, Content: msg.Content}
	}
	return context, nil
}

// ClearHistory deletes every message for the user and returns the count
// removed. Purging an unknown user returns 0 without error.
func (s *HistoryService) ClearHistory(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.log.Info("cleared chat history", "user_id", userID, "deleted", deleted)
	return deleted, nil
}

// MessageCount returns the total number of persisted turns for the user.
func (s *HistoryService) MessageCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountByUser(ctx, userID)
}

func reverse(messages []models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
