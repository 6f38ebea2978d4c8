package service

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	s := &meiliSearchService{sanitizer: bluemonday.StrictPolicy()}

	got := s.CleanText("<p>Konflik   lahan</p><div>di desa <b>Sukamaju</b></div><script>alert(1)</script>&amp; sekitarnya")
	assert.Equal(t, "Konflik lahan di desa Sukamaju & sekitarnya", got)
}

func TestDeref(t *testing.T) {
	v := "x"
	assert.Equal(t, "x", deref(&v))
	assert.Equal(t, "", deref(nil))
}
