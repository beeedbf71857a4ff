package services

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"zezim/internal/models"
)

// DefaultPersona is used whenever no administrator persona is configured and
// for every unprivileged session.
const DefaultPersona = "Você é o Chatbot Zezim, um assistente virtual amigável, educado, útil e objetivo. " +
	"Responda sempre em português do Brasil de forma clara."

// SettingsService is the process-wide administrator configuration: persona,
// operating mode and the reference document set. Every mutation bumps a
// monotonic version so conversations built from older snapshots rebuild on
// their next fetch.
type SettingsService struct {
	mu      sync.RWMutex
	persona string
	mode    models.Mode
	docs    *DocumentStore
	version int64
}

// NewSettingsService creates the settings singleton with default persona and mode
func NewSettingsService(docs *DocumentStore) *SettingsService {
	return &SettingsService{
		persona: DefaultPersona,
		mode:    models.ModeNoContext,
		docs:    docs,
	}
}

// Update sets the persona and mode. A blank persona falls back to the default
// and unknown modes degrade to no_context; invalid input never fails.
func (s *SettingsService) Update(persona, mode string) {
	persona = strings.TrimSpace(persona)
	if persona == "" {
		persona = DefaultPersona
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = persona
	s.mode = models.ParseMode(mode)
	s.version++

	logrus.WithFields(logrus.Fields{
		"mode":    s.mode,
		"version": s.version,
	}).Info("admin settings updated")
}

// AddDocument stores an extracted document and invalidates existing conversations.
func (s *SettingsService) AddDocument(name, text string) string {
	id := s.docs.Add(name, text)

	s.mu.Lock()
	s.version++
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{"document": name, "id": id}).Info("context document added")
	return id
}

// RemoveDocument removes a document by id. Only a successful removal
// invalidates existing conversations.
func (s *SettingsService) RemoveDocument(id string) bool {
	if !s.docs.Remove(id) {
		return false
	}

	s.mu.Lock()
	s.version++
	s.mu.Unlock()

	logrus.WithField("id", id).Info("context document removed")
	return true
}

// Snapshot returns an immutable copy of the current configuration
func (s *SettingsService) Snapshot() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Settings{
		Persona:   s.persona,
		Mode:      s.mode,
		Documents: s.docs.List(),
		Version:   s.version,
	}
}
