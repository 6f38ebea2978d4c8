package storage

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"kitapantaups.id/api/pkg/apperror"
)

const DefaultCategory = "dokumen"

var unsafeSegment = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeSegment strips every character outside [A-Za-z0-9_-].
func SanitizeSegment(s string) string {
	return unsafeSegment.ReplaceAllString(s, "")
}

// AllowList is an ordered set of lower-case file extensions without the dot.
type AllowList struct {
	exts []string
	set  map[string]struct{}
}

func NewAllowList(exts ...string) AllowList {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[e] = struct{}{}
	}
	return AllowList{exts: exts, set: set}
}

func (a AllowList) Allows(ext string) bool {
	_, ok := a.set[ext]
	return ok
}

func (a AllowList) String() string {
	return strings.Join(a.exts, ", ")
}

var (
	// DocumentExtensions covers complaint attachments, including shapefile parts and audio.
	DocumentExtensions = NewAllowList(
		"pdf", "jpg", "jpeg", "png", "doc", "docx", "xls", "xlsx", "zip",
		"shp", "dbf", "prj", "shx",
		"mp3", "m4a", "wav", "ogg", "aac",
	)
	PhotoExtensions = NewAllowList("jpg", "jpeg", "png")
)

// ResolveExtension returns the lower-cased text after the last dot of filename.
// Only the extension of a client filename is trusted; the rest is discarded.
func ResolveExtension(filename string, allow AllowList) (string, error) {
	ext := filename
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx+1:]
	}
	ext = strings.ToLower(ext)

	if !allow.Allows(ext) {
		return "", apperror.New(http.StatusBadRequest,
			fmt.Sprintf("Tipe file tidak diizinkan. Gunakan: %s", allow),
			fmt.Errorf("%w: %q", apperror.ErrInvalidFileType, ext))
	}
	return ext, nil
}

// StoredFileName builds "{category}_{uuid}.{ext}". The random token keeps
// repeated uploads of the same name from colliding.
func StoredFileName(category, ext string) string {
	safe := SanitizeSegment(category)
	if safe == "" {
		safe = DefaultCategory
	}
	return fmt.Sprintf("%s_%s.%s", safe, uuid.NewString(), ext)
}

// TicketFolder is the per-complaint directory name. It falls back to the
// complaint id when the ticket number sanitizes to nothing.
func TicketFolder(nomorTiket, aduanID string) (string, error) {
	if folder := SanitizeSegment(nomorTiket); folder != "" {
		return folder, nil
	}
	if folder := SanitizeSegment(aduanID); folder != "" {
		return folder, nil
	}
	return "", apperror.BadRequest("aduan_id tidak valid")
}

// ProfileFolder is the directory holding one user's profile photos.
func ProfileFolder(userID string) string {
	return ProfilesDir + "/" + SanitizeSegment(userID)
}
