package assistant

import (
	"sync"
	"time"
)

// Store keeps one Session per visitor key (web cookie or Telegram user).
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
}

func NewStore(opts Options) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		opts:     opts.withDefaults(),
	}
}

func (s *Store) Get(key string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess
	}
	sess := NewSession(s.opts)
	s.sessions[key] = sess
	return sess
}

func (s *Store) Reset(key string) {
	s.mu.Lock()
	sess, ok := s.sessions[key]
	s.mu.Unlock()

	if ok {
		sess.Reset()
	}
}

// Sweep forgets sessions idle for longer than maxIdle.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, sess := range s.sessions {
		if sess.LastActivity().Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
