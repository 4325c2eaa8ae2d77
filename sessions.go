package main

import (
	"sync"
)

// SessionIndex maps connection ids to the room they joined. Entries are
// non-owning back-references used for O(1) cleanup on disconnect and for
// resolving which room a command belongs to; room lifecycle is the
// Registry's business.
type SessionIndex struct {
	mu     sync.RWMutex
	byConn map[string]string
}

func newSessionIndex() *SessionIndex {
	return &SessionIndex{byConn: make(map[string]string)}
}

func (s *SessionIndex) Bind(connID, roomCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byConn[connID] = roomCode
}

func (s *SessionIndex) Lookup(connID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.byConn[connID]
	return code, ok
}

func (s *SessionIndex) Unbind(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byConn, connID)
}

// ConnsIn lists every connection currently bound to a room.
func (s *SessionIndex) ConnsIn(roomCode string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.byConn))
	for connID, code := range s.byConn {
		if code == roomCode {
			out = append(out, connID)
		}
	}
	return out
}

func (s *SessionIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byConn)
}
