package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"app/models"
)

// ErrNotFound is returned when a chat session id is unknown.
var ErrNotFound = errors.New("chat session not found")

// Store keeps chat sessions for the lifetime of the process. The interface
// exists so a persistent implementation can replace the in-memory one without
// touching the handlers.
type Store interface {
	Create() *models.ChatSession
	Get(id string) (*models.ChatSession, error)
	Put(session *models.ChatSession) error
	Delete(id string) error
	List() []*models.ChatSession
	Clear()
}

// MemoryStore is the default process-lifetime Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ChatSession
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.ChatSession)}
}

// Create registers a new empty session.
func (s *MemoryStore) Create() *models.ChatSession {
	now := time.Now()
	session := &models.ChatSession{
		ID:          uuid.NewString(),
		Title:       "New Chat",
		Messages:    []models.ChatMessage{},
		CreatedAt:   now,
		LastUpdated: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session with the given id.
func (s *MemoryStore) Get(id string) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Put stores the session, stamping LastUpdated.
func (s *MemoryStore) Put(session *models.ChatSession) error {
	if session == nil || session.ID == "" {
		return errors.New("session must have an id")
	}
	session.LastUpdated = time.Now()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return nil
}

// Delete removes the session with the given id.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns all sessions, newest-first by last update.
func (s *MemoryStore) List() []*models.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out
}

// Clear removes every session.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.sessions = make(map[string]*models.ChatSession)
	s.mu.Unlock()
}
