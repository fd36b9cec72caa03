package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
)

// SessionJobs removes state that outlived its session TTL.
type SessionJobs struct {
	sessionRepo attendance.SessionRepository
	jwtService  jwt.Service
	now         func() time.Time
}

func NewSessionJobs(sessionRepo attendance.SessionRepository, jwtService jwt.Service) *SessionJobs {
	return &SessionJobs{
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		now:         time.Now,
	}
}

// Register adds the session jobs to s
func (j *SessionJobs) Register(s *Scheduler, interval time.Duration) {
	s.AddJob("session_cleanup", interval, j.CleanupExpiredSessions)
}

// CleanupExpiredSessions deletes expired sessions and forgets revoked tokens
// that have expired anyway
func (j *SessionJobs) CleanupExpiredSessions(ctx context.Context) error {
	now := j.now()

	deleted, err := j.sessionRepo.DeleteExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	purged := 0
	if j.jwtService != nil {
		purged = j.jwtService.PurgeRevoked(now)
	}

	if deleted > 0 || purged > 0 {
		slog.Info("Expired sessions cleaned up", "sessions", deleted, "revoked_tokens", purged)
	}
	return nil
}
