package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("aduan: %w", ErrNotFound), http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"file type", fmt.Errorf("ext exe: %w", ErrInvalidFileType), http.StatusBadRequest},
		{"path", ErrInvalidPath, http.StatusBadRequest},
		{"too large", ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"file save", fmt.Errorf("copy: %w", ErrFileSave), http.StatusInternalServerError},
		{"app error code wins", New(http.StatusConflict, "sudah ada", ErrBadRequest), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatus(tc.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Aduan tidak ditemukan", PublicMessage(NotFound("Aduan tidak ditemukan")))
	assert.Equal(t, ErrInternal.Error(), PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "Gagal menyimpan file", PublicMessage(New(http.StatusInternalServerError, "Gagal menyimpan file", ErrFileSave)))

	wrapped := fmt.Errorf("lookup: %w", NotFound("Dokumen tidak ditemukan"))
	assert.Equal(t, "Dokumen tidak ditemukan", PublicMessage(wrapped))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}
