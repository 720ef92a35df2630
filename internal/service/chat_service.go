package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sports-lore-chatbot/backend/ai"
	"sports-lore-chatbot/backend/internal/clips"
	"sports-lore-chatbot/backend/internal/models"
	"sports-lore-chatbot/backend/pkg/logger"
)

const (
	// defaultContextWindow bounds how many recent turns feed the Q&A prompt
	defaultContextWindow = 8
	// maxClipResults bounds how many clips a single answer may attach
	maxClipResults = 2

	defaultLocation = "Seattle"

	noNewsMessage = "There's no major news right now for your teams. All quiet on the sports front! Check back later or ask me anything about sports history and lore."

	clipNote = "\n\n[Note: Relevant video clips are available and will be shown to the user automatically]"
)

// newsTriggers classify a message as a news request. Matching is
// case-insensitive substring containment; anything else is Q&A.
var newsTriggers = []string{"news", "update", "happening", "latest", "recent", "what's new"}

// HistoryStore is the orchestrator's view of the history service
type HistoryStore interface {
	AddMessage(ctx context.Context, userID, role, content string, clips []models.ClipRef) (*models.Message, error)
	ContextForLLM(ctx context.Context, userID string, maxMessages int) ([]ai.Message, error)
}

// NewsProvider is the orchestrator's view of the news client
type NewsProvider interface {
	DefaultPreferences(location string) models.UserPreferences
	ImportantNews(ctx context.Context, prefs models.UserPreferences) []models.NewsItem
}

// CompletionStreamer is the orchestrator's view of the completion client
type CompletionStreamer interface {
	StreamChatCompletion(ctx context.Context, messages []ai.Message, systemPrompt string, onToken func(token string) error) error
}

// ChatService coordinates one chat turn: classify, gather context, drive the
// completion stream, interleave clips, persist the exchange.
type ChatService struct {
	history HistoryStore
	news    NewsProvider
	llm     CompletionStreamer
	corpus  *clips.Corpus
	log     *logger.Logger
}

func NewChatService(history HistoryStore, news NewsProvider, llm CompletionStreamer, corpus *clips.Corpus, log *logger.Logger) *ChatService {
	return &ChatService{
		history: history,
		news:    news,
		llm:     llm,
		corpus:  corpus,
		log:     log,
	}
}

// Stream runs the chat pipeline for one inbound message. Events are sent on
// an unbuffered channel, so the provider read loop advances only as fast as
// the consumer drains; the channel is closed when the stream ends. Cancelling
// ctx aborts in-flight upstream calls and suppresses the assistant persist.
func (s *ChatService) Stream(ctx context.Context, req models.ChatMessage) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		s.run(ctx, req, events)
	}()
	return events
}

func (s *ChatService) run(ctx context.Context, req models.ChatMessage, events chan<- Event) {
	if !s.emit(ctx, events, Event{Type: EventStart}) {
		return
	}

	// The inbound turn is recorded before any processing so history reflects
	// the request even when downstream fails. A failed write aborts the turn.
	if _, err := s.history.AddMessage(ctx, req.UserID, models.RoleUser, req.Message, nil); err != nil {
		s.log.LogError(err, "failed to persist inbound message", "user_id", req.UserID)
		s.fail(ctx, events, "Failed to record your message. Please try again.")
		return
	}

	prefs := req.Preferences
	if prefs == nil {
		defaults := s.news.DefaultPreferences(defaultLocation)
		prefs = &defaults
	}

	if isNewsRequest(req.Message) {
		chatRequestsTotal.WithLabelValues("news").Inc()
		s.runNews(ctx, req, *prefs, events)
		return
	}

	chatRequestsTotal.WithLabelValues("qa").Inc()
	s.runQA(ctx, req, events)
}

// isNewsRequest selects the news branch when any trigger appears anywhere in
// the message. Substring containment is the documented contract; do not
// tighten to word boundaries.
func isNewsRequest(message string) bool {
	messageLower := strings.ToLower(message)
	for _, trigger := range newsTriggers {
		if strings.Contains(messageLower, trigger) {
			return true
		}
	}
	return false
}

func (s *ChatService) runNews(ctx context.Context, req models.ChatMessage, prefs models.UserPreferences, events chan<- Event) {
	items := s.news.ImportantNews(ctx, prefs)

	if len(items) == 0 {
		// Canned reply, still streamed token-by-token so the UI behaves the
		// same as a model-backed answer. No model call is made.
		s.streamStatic(ctx, req.UserID, noNewsMessage, events)
		return
	}

	var summary strings.Builder
	summary.WriteString("Here are the latest important sports updates:\n\n")
	for _, item := range items {
		fmt.Fprintf(&summary, "**%s** (%s) - %s\n", item.Team, strings.ToUpper(item.Sport), strings.ToUpper(item.Importance))
		fmt.Fprintf(&summary, "Headline: %s\n", item.Title)
		if item.Description != "" {
			fmt.Fprintf(&summary, "Details: %s\n", item.Description)
		}
		summary.WriteString("\n")
	}

	messages := []ai.Message{{
		Role:    models.RoleUser,
		Content: "Please summarize this sports news in a friendly, easy-to-understand way:\n\n" + summary.String(),
	}}

	s.streamCompletion(ctx, req.UserID, messages, sportsNewsSystemPrompt, nil, events)
}

func (s *ChatService) runQA(ctx context.Context, req models.ChatMessage, events chan<- Event) {
	history, err := s.history.ContextForLLM(ctx, req.UserID, defaultContextWindow)
	if err != nil {
		s.log.LogError(err, "failed to load conversation context", "user_id", req.UserID)
		s.fail(ctx, events, "Failed to load your conversation history. Please try again.")
		return
	}

	found := s.corpus.Search(req.Message, maxClipResults)
	clipRefs := toClipRefs(found)

	current := req.Message
	if len(clipRefs) > 0 {
		s.log.Debug("found relevant clips", "count", len(clipRefs))
		current += clipNote
	}

	messages := append(history, ai.Message{Role: models.RoleUser, Content: current})
	s.streamCompletion(ctx, req.UserID, messages, sportsLoreSystemPrompt, clipRefs, events)
}

// streamCompletion drives the provider token stream, relays each token as an
// event, then emits clips, persists the assistant turn, and finishes with
// done. Any failure produces a single error event and leaves no assistant row.
func (s *ChatService) streamCompletion(ctx context.Context, userID string, messages []ai.Message, systemPrompt string, clipRefs []models.ClipRef, events chan<- Event) {
	var full strings.Builder

	err := s.llm.StreamChatCompletion(ctx, messages, systemPrompt, func(token string) error {
		full.WriteString(token)
		if !s.emit(ctx, events, Event{Type: EventToken, Content: token}) {
			return context.Canceled
		}
		streamedTokensTotal.Inc()
		return nil
	})
	if err != nil {
		s.handleStreamError(ctx, err, events)
		return
	}

	for i := range clipRefs {
		if !s.emit(ctx, events, Event{Type: EventClip, Clip: &clipRefs[i]}) {
			return
		}
	}

	if _, err := s.history.AddMessage(ctx, userID, models.RoleAssistant, full.String(), clipRefs); err != nil {
		s.log.LogError(err, "failed to persist assistant message", "user_id", userID)
		s.fail(ctx, events, "Failed to save the response. Please try again.")
		return
	}

	s.emit(ctx, events, Event{Type: EventDone})
}

// streamStatic plays a fixed sentence out as word tokens and persists it as
// the assistant turn.
func (s *ChatService) streamStatic(ctx context.Context, userID, content string, events chan<- Event) {
	words := strings.Fields(content)
	for i, word := range words {
		token := word + " "
		if i == len(words)-1 {
			token = word
		}
		if !s.emit(ctx, events, Event{Type: EventToken, Content: token}) {
			return
		}
		streamedTokensTotal.Inc()
	}

	if _, err := s.history.AddMessage(ctx, userID, models.RoleAssistant, content, nil); err != nil {
		s.log.LogError(err, "failed to persist canned reply", "user_id", userID)
		s.fail(ctx, events, "Failed to save the response. Please try again.")
		return
	}

	s.emit(ctx, events, Event{Type: EventDone})
}

func (s *ChatService) handleStreamError(ctx context.Context, err error, events chan<- Event) {
	if errors.Is(err, context.Canceled) {
		// Consumer went away; nothing left to tell it.
		return
	}

	var provErr *ai.ProviderError
	var netErr *ai.NetworkError
	var message string
	switch {
	case errors.As(err, &provErr):
		s.log.LogError(err, "completion provider error", "status", provErr.StatusCode)
		switch {
		case provErr.RateLimited():
			message = "Rate limit exceeded. The free tier has limited requests. Please wait a moment and try again."
		case provErr.Unauthenticated():
			message = "API authentication failed. Please check your OpenRouter API key."
		default:
			message = fmt.Sprintf("API error (%d). Please try again.", provErr.StatusCode)
		}
	case errors.As(err, &netErr):
		s.log.LogError(err, "completion provider network error")
		message = "Network error. Please check your connection and try again."
	default:
		s.log.LogError(err, "unexpected error during completion stream")
		message = fmt.Sprintf("An unexpected error occurred: %v", err)
	}

	s.fail(ctx, events, message)
}

func (s *ChatService) fail(ctx context.Context, events chan<- Event, message string) {
	streamErrorsTotal.Inc()
	s.emit(ctx, events, Event{Type: EventError, Content: message})
}

// emit sends one event, reporting false when the consumer is gone.
func (s *ChatService) emit(ctx context.Context, events chan<- Event, event Event) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func toClipRefs(found []clips.Clip) []models.ClipRef {
	if len(found) == 0 {
		return nil
	}
	refs := make([]models.ClipRef, len(found))
	for i, clip := range found {
		refs[i] = models.ClipRef{
			ClipID:      clip.ID,
			Title:       clip.Title,
			Description: clip.Description,
			YouTubeID:   clip.YouTubeID,
			Timestamp:   clip.Timestamp,
		}
	}
	return refs
}
