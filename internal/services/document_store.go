package services

import (
	"sync"

	"github.com/google/uuid"

	"zezim/internal/models"
)

// MaxDocumentChars caps the stored text of a single reference document
const MaxDocumentChars = 8000

// DocumentStore holds the administrator's reference documents in memory.
// Insertion order is preserved because it drives prompt assembly order.
type DocumentStore struct {
	mu   sync.RWMutex
	docs []models.Document
}

// NewDocumentStore creates an empty document store
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Add stores a named text blob, truncated to MaxDocumentChars, and returns
// the assigned document id.
func (s *DocumentStore) Add(name, text string) string {
	if runes := []rune(text); len(runes) > MaxDocumentChars {
		text = string(runes[:MaxDocumentChars])
	}

	doc := models.Document{
		ID:   uuid.New().String(),
		Name: name,
		Text: text,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)

	return doc.ID
}

// Remove deletes the document with the given id. Removing an unknown id is a
// no-op, reported through the return value rather than an error.
func (s *DocumentStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range s.docs {
		if doc.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a snapshot of all documents in insertion order
func (s *DocumentStore) List() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, len(s.docs))
	copy(out, s.docs)
	return out
}
