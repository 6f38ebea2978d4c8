package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/storage"
)

const cacheForever = "public, max-age=31536000, immutable"

// FileHandler serves stored uploads. Stored names carry a random token, so
// responses are cached as immutable.
type FileHandler struct {
	storage storage.FileStorage
}

func NewFileHandler(fileStorage storage.FileStorage) *FileHandler {
	return &FileHandler{storage: fileStorage}
}

// ServeFile handles GET /uploads/*filepath.
func (h *FileHandler) ServeFile(c *gin.Context) {
	fragment := strings.TrimPrefix(c.Param("filepath"), "/")

	f, info, err := h.storage.Open(fragment)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidPath) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Path file tidak valid"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "File tidak ditemukan"})
		return
	}
	defer f.Close()

	c.Header("Content-Type", storage.ContentTypeFor(info.Name()))
	c.Header("Content-Length", strconv.FormatInt(info.Size(), 10))
	c.Header("Cache-Control", cacheForever)
	c.Status(http.StatusOK)

	if c.Request.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(c.Writer, f); err != nil {
		log.Printf("⚠️ failed to stream %s: %v", fragment, err)
	}
}
