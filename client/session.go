// Package client is the chat side of wayfinder: it keeps the conversation,
// talks to the backend and drives a Presenter.
package client

import (
	"sync"

	"github.com/google/uuid"

	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// Message roles kept in a Session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the state of one chat session. The conversation only grows.
type Session struct {
	id string

	mu       sync.RWMutex
	history  []Message
	apiKey   string
	location *maps.LatLng
	mode     string
}

// NewSession creates an empty session that routes by car.
func NewSession() *Session {
	return &Session{
		id:   uuid.NewString(),
		mode: maps.ModeDriving,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Append adds a message to the end of the conversation.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Message{Role: role, Content: content})
}

// Snapshot returns a copy of the conversation in order.
func (s *Session) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Len is the number of messages in the conversation.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// APIKey is the Maps key used for embed URLs. Empty until fetched.
func (s *Session) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// SetAPIKey stores the Maps key.
func (s *Session) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// Location returns the last known user location.
func (s *Session) Location() (maps.LatLng, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.location == nil {
		return maps.LatLng{}, false
	}
	return *s.location, true
}

// SetLocation records the user location.
func (s *Session) SetLocation(at maps.LatLng) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = &at
}

// Mode is the travel mode for directions.
func (s *Session) Mode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode changes the travel mode for later directions.
func (s *Session) SetMode(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}
