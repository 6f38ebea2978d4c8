package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"kitapantaups.id/api/internal/middleware"
	"kitapantaups.id/api/internal/modules/attachment/dto"
	"kitapantaups.id/api/internal/modules/attachment/service"
	"kitapantaups.id/api/pkg/response"
	"kitapantaups.id/api/pkg/validator"
)

type AttachmentHandler struct {
	service service.AttachmentService
}

func NewAttachmentHandler(service service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// RegisterRoutes mounts the attachment endpoints on the authenticated /aduan group.
func (h *AttachmentHandler) RegisterRoutes(aduan *gin.RouterGroup, auth *middleware.AuthMiddleware, maxUploadBytes int64) {
	aduan.POST("/upload", middleware.BodyLimit(maxUploadBytes), h.UploadAttachment)
	aduan.GET("/:id/documents", h.ListDocuments)
	aduan.POST("/:id/documents", h.RegisterDocument)
	aduan.DELETE("/:id/documents/:docId", auth.RequireAdmin(), h.DeleteDocument)
	aduan.GET("/:id/attachments", h.GetAttachments)
	aduan.GET("/:id/attachments/zip", h.DownloadArchive)
}

const maxFieldBytes = 1 << 10

// UploadAttachment handles POST /aduan/upload. The body is read part by part:
// when aduan_id and category precede the file, the file part is piped straight
// into the ticket folder. A file sent before them is spooled to a temp file
// until the complaint is known.
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File tidak ditemukan"})
		return
	}

	var (
		aduanID, category string
		haveCategory      bool
		spooled           *spooledFile
	)
	defer func() { spooled.remove() }()

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.uploadError(c, fmt.Errorf("%w: %w", errMalformedForm, err))
			return
		}

		switch part.FormName() {
		case "aduan_id":
			aduanID, err = readField(part)
		case "category":
			category, err = readField(part)
			haveCategory = true
		case "file":
			if part.FileName() == "" || spooled != nil {
				break
			}
			if aduanID != "" && haveCategory {
				h.store(c, aduanID, category, part.FileName(), part)
				part.Close()
				return
			}
			spooled, err = spool(part)
		}
		part.Close()
		if err != nil {
			h.uploadError(c, err)
			return
		}
	}

	if spooled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File tidak ditemukan"})
		return
	}
	if aduanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aduan_id wajib diisi"})
		return
	}
	h.store(c, aduanID, category, spooled.name, spooled.file)
}

func (h *AttachmentHandler) store(c *gin.Context, aduanID, category, fileName string, content io.Reader) {
	stored, err := h.service.Upload(c.Request.Context(), aduanID, category, fileName, content)
	if err != nil {
		h.uploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadResponse{URL: stored.URL})
}

func (h *AttachmentHandler) uploadError(c *gin.Context, err error) {
	switch {
	case middleware.IsBodyTooLarge(err):
		middleware.AbortBodyTooLarge(c)
	case errors.Is(err, errFieldTooLong), errors.Is(err, errMalformedForm):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form upload tidak valid"})
	default:
		response.ResponseError(c, err)
	}
}

var (
	errFieldTooLong  = errors.New("form field too long")
	errMalformedForm = errors.New("malformed multipart form")
)

func readField(part *multipart.Part) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", errMalformedForm, err)
	}
	if len(raw) > maxFieldBytes {
		return "", errFieldTooLong
	}
	return strings.TrimSpace(string(raw)), nil
}

type spooledFile struct {
	name string
	file *os.File
}

func spool(part *multipart.Part) (*spooledFile, error) {
	f, err := os.CreateTemp("", "aduan-upload-*")
	if err != nil {
		return nil, err
	}
	spooled := &spooledFile{name: part.FileName(), file: f}
	if _, err := io.Copy(f, part); err != nil {
		spooled.remove()
		if middleware.IsBodyTooLarge(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errMalformedForm, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		spooled.remove()
		return nil, err
	}
	return spooled, nil
}

func (s *spooledFile) remove() {
	if s == nil {
		return
	}
	s.file.Close()
	if err := os.Remove(s.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ failed to remove spooled upload %s: %v", s.file.Name(), err)
	}
}

func (h *AttachmentHandler) RegisterDocument(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.RegisterDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	doc, err := h.service.RegisterDocument(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Dokumen berhasil ditambahkan", "data": doc})
}

func (h *AttachmentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.service.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

func (h *AttachmentHandler) DeleteDocument(c *gin.Context) {
	actor, err := response.GetActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), actor, c.Param("id"), c.Param("docId")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AttachmentHandler) GetAttachments(c *gin.Context) {
	items, err := h.service.Attachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AttachmentHandler) DownloadArchive(c *gin.Context) {
	archive, err := h.service.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archive.FileName))
	c.Status(http.StatusOK)

	// Headers are already sent; a failure here can only be logged.
	if _, err := archive.WriteTo(c.Writer); err != nil {
		log.Printf("❌ failed to stream %s: %v", archive.FileName, err)
	}
}
