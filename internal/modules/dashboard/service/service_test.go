package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kitapantaups.id/api/internal/modules/dashboard/repository"
)

type fakeRepo struct {
	since time.Time
	err   error
}

func (f *fakeRepo) CountAll(context.Context) (int64, error) { return 12, f.err }

func (f *fakeRepo) CountByStatus(context.Context) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: "disposisi", Count: 7}, {Status: "selesai", Count: 5}}, nil
}

func (f *fakeRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	f.since = since
	return 3, nil
}

func TestGetStats(t *testing.T) {
	repo := &fakeRepo{}
	now := time.Date(2025, time.March, 31, 8, 0, 0, 0, time.UTC)
	svc := &dashboardService{repo: repo, now: func() time.Time { return now }}

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.Total)
	assert.Equal(t, map[string]int64{"disposisi": 7, "selesai": 5}, stats.ByStatus)
	assert.Equal(t, int64(3), stats.Last30Days)
	assert.Equal(t, time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC), repo.since)
}

func TestGetStatsPropagatesErrors(t *testing.T) {
	svc := NewDashboardService(&fakeRepo{err: errors.New("db down")})

	_, err := svc.GetStats(context.Background())
	assert.Error(t, err)
}
