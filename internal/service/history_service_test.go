package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-lore-chatbot/backend/internal/models"
)

type fakeMessageRepo struct {
	rows []models.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	message.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *message)
	return nil
}

// GetRecentByUser mirrors the store's newest-first contract
func (f *fakeMessageRepo) GetRecentByUser(ctx context.Context, userID string, limit int) ([]models.Message, error) {
	var out []models.Message
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	var kept []models.Message
	var deleted int64
	for _, row := range f.rows {
		if row.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

func (f *fakeMessageRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

func newTestHistoryService() (*HistoryService, *fakeMessageRepo) {
	repo := &fakeMessageRepo{}
	return NewHistoryService(repo, testLogger()), repo
}

func TestAddMessageValidation(t *testing.T) {
	svc, repo := newTestHistoryService()
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, "user-1", "system", "not allowed", nil)
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = svc.AddMessage(ctx, "user-1", models.RoleUser, "", nil)
	assert.ErrorIs(t, err, ErrInvalidMessage)

	assert.Empty(t, repo.rows)
}

func TestAddMessageAssignsExternalID(t *testing.T) {
	svc, _ := newTestHistoryService()

	first, err := svc.AddMessage(context.Background(), "user-1", models.RoleUser, "hello", nil)
	require.NoError(t, err)
	second, err := svc.AddMessage(context.Background(), "user-1", models.RoleAssistant, "hi", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, first.ExternalID)
	assert.NotEmpty(t, second.ExternalID)
	assert.NotEqual(t, first.ExternalID, second.ExternalID)
}

func TestAddMessagePersistsClips(t *testing.T) {
	svc, repo := newTestHistoryService()

	clipRefs := []models.ClipRef{{ClipID: "kawhi_bounce", Title: "Kawhi Leonard's Game 7 Buzzer Beater (2019)", YouTubeID: "ChT3ewZXTfM"}}
	_, err := svc.AddMessage(context.Background(), "user-1", models.RoleAssistant, "here you go", clipRefs)
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	stored := repo.rows[0].ClipList()
	require.Len(t, stored, 1)
	assert.Equal(t, "kawhi_bounce", stored[0].ClipID)
}

func TestConversationHistoryChronologicalWindow(t *testing.T) {
	svc, _ := newTestHistoryService()
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third", "fourth"} {
		_, err := svc.AddMessage(ctx, "user-1", models.RoleUser, content, nil)
		require.NoError(t, err)
	}
	_, err := svc.AddMessage(ctx, "user-2", models.RoleUser, "someone else", nil)
	require.NoError(t, err)

	history, err := svc.ConversationHistory(ctx, "user-1", 3)
	require.NoError(t, err)

	// newest 3, oldest first
	require.Len(t, history, 3)
	assert.Equal(t, "second", history[0].Content)
	assert.Equal(t, "third", history[1].Content)
	assert.Equal(t, "fourth", history[2].Content)
}

func TestContextForLLMProjection(t *testing.T) {
	svc, _ := newTestHistoryService()
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, "user-1", models.RoleUser, "question", []models.ClipRef{{ClipID: "kobe_81"}})
	require.NoError(t, err)
	_, err = svc.AddMessage(ctx, "user-1", models.RoleAssistant, "answer", nil)
	require.NoError(t, err)

	llmContext, err := svc.ContextForLLM(ctx, "user-1", 10)
	require.NoError(t, err)

	require.Len(t, llmContext, 2)
	assert.Equal(t, models.RoleUser, llmContext[0].Role)
	assert.Equal(t, "question", llmContext[0].Content)
	assert.Equal(t, models.RoleAssistant, llmContext[1].Role)
	assert.Equal(t, "answer", llmContext[1].Content)
}

func TestClearHistory(t *testing.T) {
	svc, repo := newTestHistoryService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddMessage(ctx, "user-1", models.RoleUser, "msg", nil)
		require.NoError(t, err)
	}
	_, err := svc.AddMessage(ctx, "user-2", models.RoleUser, "keep me", nil)
	require.NoError(t, err)

	deleted, err := svc.ClearHistory(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "user-2", repo.rows[0].UserID)

	// purging again, or an unknown user, is a no-op
	deleted, err = svc.ClearHistory(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestMessageCount(t *testing.T) {
	svc, _ := newTestHistoryService()
	ctx := context.Background()

	count, err := svc.MessageCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = svc.AddMessage(ctx, "user-1", models.RoleUser, "one", nil)
	require.NoError(t, err)

	count, err = svc.MessageCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
