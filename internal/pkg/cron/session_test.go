package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
	"github.com/eldar-magrafta/hilan-calculator/internal/repository/memory"
)

func TestCleanupExpiredSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)

	repo := memory.NewSessionRepository()
	_, _ = repo.Create(ctx, attendance.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)})
	_, _ = repo.Create(ctx, attendance.Session{ID: "new", ExpiresAt: now.Add(time.Minute)})

	jwtService := jwt.NewJWTService("secret", time.Hour, time.Minute)
	jwtService.RevokeToken("revoked", now.Add(-time.Hour).Unix())

	jobs := NewSessionJobs(repo, jwtService)
	jobs.now = func() time.Time { return now }

	s := NewScheduler(ctx)
	jobs.Register(s, time.Minute)
	require.NoError(t, s.RunOnce(ctx))

	_, err := repo.GetByID(ctx, "old")
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
	_, err = repo.GetByID(ctx, "new")
	assert.NoError(t, err)
	assert.False(t, jwtService.IsTokenRevoked("revoked"))
}
