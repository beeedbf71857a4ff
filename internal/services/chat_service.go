package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"zezim/internal/config"
	"zezim/internal/llm"
	"zezim/internal/models"
)

// ErrEmptyMessage is returned when the trimmed user message is blank
var ErrEmptyMessage = errors.New("Mensagem vazia")

// artifactTokens are model artifacts stripped from raw replies wherever they occur
var artifactTokens = []string{"<s>", "</s>", "<pad>", "<unk>"}

// ChatService orchestrates one chat exchange: validate, fetch history, append
// the user turn, call the completion provider, sanitize and append the reply.
type ChatService struct {
	provider      llm.Provider
	conversations *ConversationService

	model             string
	timeout           time.Duration
	rollbackOnFailure bool
}

// NewChatService creates the chat orchestrator
func NewChatService(provider llm.Provider, conversations *ConversationService, cfg *config.Config) *ChatService {
	return &ChatService{
		provider:          provider,
		conversations:     conversations,
		model:             cfg.Model,
		timeout:           cfg.CompletionTimeout,
		rollbackOnFailure: cfg.RollbackOnFailure,
	}
}

// SendMessage runs a full chat exchange for a session and returns the
// sanitized reply. The conversation stays locked for the whole exchange so
// concurrent requests for the same session cannot interleave their appends.
//
// When the provider call fails the already-appended user turn is kept, so a
// resubmission sees the prior context. CHAT_ROLLBACK_ON_FAILURE flips that.
func (s *ChatService) SendMessage(ctx context.Context, sessionID string, privileged bool, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	conv := s.conversations.Fetch(sessionID, privileged)
	conv.Lock()
	defer conv.Unlock()

	conv.Turns = append(conv.Turns, models.ChatMessage{Role: models.RoleUser, Content: message})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	turns := make([]llm.Message, len(conv.Turns))
	for i, t := range conv.Turns {
		turns[i] = llm.Message{Role: t.Role, Content: t.Content}
	}

	raw, err := s.provider.Complete(ctx, s.model, turns)
	if err != nil {
		if s.rollbackOnFailure {
			conv.Turns = conv.Turns[:len(conv.Turns)-1]
		}
		logrus.WithError(err).WithField("session", sessionID).Error("completion call failed")
		return "", fmt.Errorf("Erro ao chamar o modelo: %w", err)
	}

	reply := SanitizeReply(raw)
	conv.Turns = append(conv.Turns, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	s.conversations.Persist(sessionID, conv)

	return reply, nil
}

// SanitizeReply removes known model artifact tokens anywhere in the text and
// trims surrounding whitespace.
func SanitizeReply(raw string) string {
	for _, token := range artifactTokens {
		raw = strings.ReplaceAll(raw, token, "")
	}
	return strings.TrimSpace(raw)
}
