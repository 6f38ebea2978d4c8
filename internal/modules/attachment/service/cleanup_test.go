package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"kitapantaups.id/api/pkg/storage"
)

func TestCleanupOrphanFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	f.svc.sweep = SweepConfig{GracePeriod: time.Hour, Now: func() time.Time { return now }}

	save := func(dir, name string, age time.Duration) *storage.StoredFile {
		stored, err := f.storage.Save(ctx, dir, name, bytes.NewReader([]byte(name)))
		require.NoError(t, err)
		mod := now.Add(-age)
		require.NoError(t, os.Chtimes(stored.AbsPath, mod, mod))
		return stored
	}

	referenced := save("ADU25000001", "dokumen_ref.pdf", 48*time.Hour)
	legacy := save("ADU25000001", "legacy.pdf", 48*time.Hour)
	orphan := save("ADU25000001", "dokumen_orphan.pdf", 48*time.Hour)
	fresh := save("ADU25000002", "dokumen_new.pdf", 10*time.Minute)
	photo := save("profiles/u1", "profile_a.png", 48*time.Hour)

	f.docs.On("ReferencedURLs", mock.Anything).Return([]string{
		"https://old-host.example/uploads/ADU25000001/dokumen_ref.pdf",
		"http://localhost:3000/uploads/legacy.pdf",
		"https://drive.google.com/file/d/abc",
	}, nil)

	report, err := f.svc.CleanupOrphanFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Scanned)
	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, 0, report.Failed)

	for _, kept := range []*storage.StoredFile{referenced, legacy, fresh, photo} {
		_, err := os.Stat(kept.AbsPath)
		assert.NoError(t, err, kept.RelPath)
	}
	_, err = os.Stat(orphan.AbsPath)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupAbortsWhenReferencesUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored, err := f.storage.Save(ctx, "ADU25000001", "dokumen_a.pdf", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	old := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(stored.AbsPath, old, old))

	f.docs.On("ReferencedURLs", mock.Anything).Return(nil, errors.New("db down"))

	_, err = f.svc.CleanupOrphanFiles(ctx)
	assert.Error(t, err)
	_, err = os.Stat(stored.AbsPath)
	assert.NoError(t, err)
}
