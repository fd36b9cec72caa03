// Package memory keeps sessions in process memory. Sessions are lost on
// restart and not shared between instances.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
)

type sessionRepositoryImpl struct {
	mu       sync.RWMutex
	sessions map[string]attendance.Session
}

// NewSessionRepository creates an empty in-memory SessionRepository.
func NewSessionRepository() attendance.SessionRepository {
	return &sessionRepositoryImpl{sessions: make(map[string]attendance.Session)}
}

func (r *sessionRepositoryImpl) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = clone(session)
	return session, nil
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	return clone(session), nil
}

func (r *sessionRepositoryImpl) SetClassification(ctx context.Context, id string, date calendar.Date, classification attendance.Classification) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return attendance.Session{}, attendance.ErrSessionNotFound
	}
	if session.Classifications == nil {
		session.Classifications = make(map[calendar.Date]attendance.Classification)
	}
	session.Classifications[date] = classification
	session.UpdatedAt = time.Now()
	r.sessions[id] = session

	return clone(session), nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, session := range r.sessions {
		if session.IsExpired(now) {
			delete(r.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// clone copies the slices and maps of s so callers cannot mutate stored state.
func clone(s attendance.Session) attendance.Session {
	out := s
	if s.Entries != nil {
		out.Entries = make([]attendance.DayEntry, len(s.Entries))
		copy(out.Entries, s.Entries)
	}
	if s.Classifications != nil {
		out.Classifications = make(map[calendar.Date]attendance.Classification, len(s.Classifications))
		for d, c := range s.Classifications {
			out.Classifications[d] = c
		}
	}
	return out
}
