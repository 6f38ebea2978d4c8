package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	attachment "kitapantaups.id/api/internal/modules/attachment/service"
)

type fakeSweeper struct {
	calls int
	err   error
}

func (f *fakeSweeper) CleanupOrphanFiles(ctx context.Context) (*attachment.SweepReport, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected deadline")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &attachment.SweepReport{Scanned: 3, Kept: 2, Removed: 1}, nil
}

type fakePurger struct {
	removed int64
}

func (f *fakePurger) PurgeExpiredSessions(context.Context) (int64, error) {
	return f.removed, nil
}

func TestRegisterAndRunByName(t *testing.T) {
	s := NewScheduler(time.Minute)
	sweeper := &fakeSweeper{}

	require.NoError(t, s.Register(NewOrphanSweepJob(sweeper, "@every 12h")))
	require.NoError(t, s.Register(NewSessionPurgeJob(&fakePurger{removed: 4}, "")))
	assert.Equal(t, []string{"orphan-sweep", "session-purge"}, s.Jobs())

	require.NoError(t, s.RunByName(context.Background(), "orphan-sweep"))
	assert.Equal(t, 1, sweeper.calls)

	require.NoError(t, s.RunByName(context.Background(), "session-purge"))
}

func TestRunByNamePropagatesFailure(t *testing.T) {
	s := NewScheduler(time.Minute)
	require.NoError(t, s.Register(NewOrphanSweepJob(&fakeSweeper{err: errors.New("db down")}, "")))

	err := s.RunByName(context.Background(), "orphan-sweep")
	assert.EqualError(t, err, "db down")
}

func TestRunByNameUnknownJob(t *testing.T) {
	s := NewScheduler(0)
	assert.ErrorIs(t, s.RunByName(context.Background(), "missing"), ErrJobNotFound)
}

func TestRegisterRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(time.Minute)
	err := s.Register(NewOrphanSweepJob(&fakeSweeper{}, "not a schedule"))
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(time.Minute)
	require.NoError(t, s.Register(NewSessionPurgeJob(&fakePurger{}, "@every 1h")))
	s.Start()
	s.Stop()
}
