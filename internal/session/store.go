// Package session provides quiz.SessionStore implementations: an in-memory
// map store, a SQL-backed store, a redis cache layer and a fallback wrapper
// that degrades persistence failures to memory instead of aborting a test.
package session

import (
	"context"
	"sync"

	"github.com/DanyaArt/itbot/internal/quiz"
)

// MemoryStore keeps sessions in a process-local map keyed by user id.
// This mirrors the lifetime model of the original deployment: abandoned
// sessions simply age in place until the process restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[int64]*quiz.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: map[int64]*quiz.Session{}}
}

func (m *MemoryStore) Put(_ context.Context, s *quiz.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := cloneSession(s)
	m.byID[s.UserID] = cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (*quiz.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[userID]
	if !ok {
		return nil, quiz.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, userID)
	return nil
}

// UserIDs lists every user with a stored session, for broadcast.
func (m *MemoryStore) UserIDs(_ context.Context) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int64, 0, len(m.byID))
	for id := range m.byID {
		out = append(out, id)
	}
	return out, nil
}

// FinishedCount reports how many stored sessions have a computed result.
func (m *MemoryStore) FinishedCount(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.byID {
		if s.Finished() {
			n++
		}
	}
	return n, nil
}

// cloneSession deep-copies so callers can't mutate stored state in place.
func cloneSession(s *quiz.Session) *quiz.Session {
	cp := *s
	cp.Answers = make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	cp.Scores = make(map[quiz.Category]int, len(s.Scores))
	for k, v := range s.Scores {
		cp.Scores[k] = v
	}
	if s.Result != nil {
		r := *s.Result
		r.Scores = make(map[quiz.Category]int, len(s.Result.Scores))
		for k, v := range s.Result.Scores {
			r.Scores[k] = v
		}
		r.Percentages = make(map[quiz.Category]int, len(s.Result.Percentages))
		for k, v := range s.Result.Percentages {
			r.Percentages[k] = v
		}
		cp.Result = &r
	}
	return &cp
}
