package services

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"zezim/internal/models"
)

// Conversation is one session's ordered message log. Turns[0] is always the
// system turn composed from the settings snapshot recorded below; the whole
// log is replaced, never patched, when that snapshot goes stale.
//
// The embedded mutex serializes a full chat exchange per session: callers
// must hold it across the append → complete → append cycle.
type Conversation struct {
	sync.Mutex

	Turns []models.ChatMessage

	builtVersion    int64
	builtPrivileged bool
}

// ConversationService manages per-session conversation histories. Idle
// sessions are evicted after the configured TTL.
type ConversationService struct {
	settings *SettingsService
	store    *cache.Cache

	// mu serializes Fetch so two first-contact requests for the same
	// session cannot each create a conversation.
	mu sync.Mutex
}

// NewConversationService creates the conversation manager backing store
func NewConversationService(settings *SettingsService, ttl time.Duration) *ConversationService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ConversationService{
		settings: settings,
		store:    cache.New(ttl, 10*time.Minute),
	}
}

// Fetch returns the conversation for a session, rebuilding it when none is
// stored or when the settings version or privilege flag changed since the
// stored one was built. A rebuild discards all prior turns.
func (s *ConversationService) Fetch(sessionID string, privileged bool) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.settings.Snapshot()

	if v, ok := s.store.Get(sessionID); ok {
		conv := v.(*Conversation)
		// builtVersion and builtPrivileged are set once at construction and
		// never mutated, so no conversation lock is needed to read them.
		if conv.builtVersion == snap.Version && conv.builtPrivileged == privileged {
			s.store.SetDefault(sessionID, conv)
			return conv
		}
		logrus.WithFields(logrus.Fields{
			"session": sessionID,
			"version": snap.Version,
		}).Debug("conversation stale, rebuilding system turn")
	}

	conv := &Conversation{
		Turns: []models.ChatMessage{
			{Role: models.RoleSystem, Content: ComposeInstruction(privileged, snap)},
		},
		builtVersion:    snap.Version,
		builtPrivileged: privileged,
	}
	s.store.SetDefault(sessionID, conv)
	return conv
}

// Persist writes a conversation back under its session key, refreshing the TTL.
func (s *ConversationService) Persist(sessionID string, conv *Conversation) {
	s.store.SetDefault(sessionID, conv)
}

// Reset deletes the stored history for a session. Resetting a session with no
// history is a no-op; either way the next fetch builds a fresh conversation.
func (s *ConversationService) Reset(sessionID string) {
	s.store.Delete(sessionID)
}
