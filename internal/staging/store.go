package staging

import (
	"sync"
	"time"
)

// Store keeps one workspace per visitor key, created lazily.
type Store struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	newFn      func() *Workspace
}

func NewStore(opts Options) *Store {
	return &Store{
		workspaces: make(map[string]*Workspace),
		newFn:      func() *Workspace { return NewWorkspace(opts) },
	}
}

func (s *Store) Get(key string) *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.workspaces[key]; ok && !ws.Closed() {
		return ws
	}
	ws := s.newFn()
	s.workspaces[key] = ws
	return ws
}

func (s *Store) Lookup(key string) (*Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[key]
	if !ok || ws.Closed() {
		return nil, false
	}
	return ws, true
}

// Drop closes and forgets one workspace.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	ws, ok := s.workspaces[key]
	delete(s.workspaces, key)
	s.mu.Unlock()

	if ok {
		ws.Close()
	}
}

// Replace closes any workspace held under key and installs a fresh one.
func (s *Store) Replace(key string) *Workspace {
	ws := s.newFn()

	s.mu.Lock()
	old, ok := s.workspaces[key]
	s.workspaces[key] = ws
	s.mu.Unlock()

	if ok {
		old.Close()
	}
	return ws
}

// DropIf closes ws and forgets it, but only while it is still the workspace
// held under key. It reports whether anything was dropped.
func (s *Store) DropIf(key string, ws *Workspace) bool {
	s.mu.Lock()
	cur, ok := s.workspaces[key]
	if !ok || cur != ws {
		s.mu.Unlock()
		return false
	}
	delete(s.workspaces, key)
	s.mu.Unlock()

	ws.Close()
	return true
}

// Sweep closes workspaces idle for longer than maxIdle. Workspaces with an
// active run are kept. It returns the number of workspaces removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	var stale []*Workspace
	for key, ws := range s.workspaces {
		if ws.Running() || ws.LastActive().After(cutoff) {
			continue
		}
		stale = append(stale, ws)
		delete(s.workspaces, key)
	}
	s.mu.Unlock()

	for _, ws := range stale {
		ws.Close()
	}
	return len(stale)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Close tears down every workspace.
func (s *Store) Close() {
	s.mu.Lock()
	all := s.workspaces
	s.workspaces = make(map[string]*Workspace)
	s.mu.Unlock()

	for _, ws := range all {
		ws.Close()
	}
}
