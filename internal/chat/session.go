package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/llamabot/llamabot/internal/provider"
)

// SystemPrompt is prepended to every completion request. It is never
// written to the store.
const SystemPrompt = "You are my helpful assistant 🦙"

// Session keeps the in-memory transcript in lockstep with the store.
// Every append is written through before it becomes visible in memory, so
// a failed write leaves both views unchanged.
type Session struct {
	repo *Repo

	mu         sync.Mutex
	loaded     bool
	transcript []ChatMessage
}

func NewSession(repo *Repo) *Session {
	return &Session{repo: repo}
}

// Init loads the full history from the store into memory. The first call
// wins; later calls are no-ops for the lifetime of the process.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	msgs, err := s.repo.ListMessages(ctx)
	if err != nil {
		return err
	}
	s.transcript = msgs
	s.loaded = true
	return nil
}

func (s *Session) record(ctx context.Context, role, content, modelID string) (*ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := &ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		ModelID:   modelID,
	}
	if err := s.repo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.transcript = append(s.transcript, *msg)
	return msg, nil
}

// RecordUserTurn persists a user message and returns it with the store's
// primary key set. Feedback correlates on that key, so ids stay stable
// across restarts.
func (s *Session) RecordUserTurn(ctx context.Context, content, modelID string) (*ChatMessage, error) {
	return s.record(ctx, RoleUser, content, modelID)
}

func (s *Session) RecordAssistantTurn(ctx context.Context, content, modelID string) (*ChatMessage, error) {
	return s.record(ctx, RoleAssistant, content, modelID)
}

// BuildRequestContext is the exact payload for the completion endpoint:
// the system instruction followed by the whole transcript reduced to
// {role, content}. Stored rows carry provenance metadata; sent rows do not.
func (s *Session) BuildRequestContext() []provider.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]provider.Message, 0, len(s.transcript)+1)
	out = append(out, provider.Message{Role: RoleSystem, Content: SystemPrompt})
	for _, m := range s.transcript {
		out = append(out, provider.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// Transcript returns a snapshot copy in insertion order.
func (s *Session) Transcript() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.transcript...)
}

// Search matches query as a case-insensitive substring of message content,
// preserving transcript order. An empty result is valid.
func (s *Session) Search(query string) []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	out := make([]ChatMessage, 0)
	for _, m := range s.transcript {
		if strings.Contains(strings.ToLower(m.Content), q) {
			out = append(out, m)
		}
	}
	return out
}

// Clear empties the store and then the in-memory transcript under one
// lock, so no reader observes the two disagreeing.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.transcript = s.transcript[:0]
	return nil
}
