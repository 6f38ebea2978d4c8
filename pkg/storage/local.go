package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"kitapantaups.id/api/pkg/apperror"
)

const (
	URLPrefix   = "/uploads/"
	ProfilesDir = "profiles"
)

var storedNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[a-z0-9]+$`)

// FileStorage defines the contract of the uploads tree.
type FileStorage interface {
	// Save streams r into {dir}/{name} and returns the public URL of the result.
	Save(ctx context.Context, dir, name string, r io.Reader) (*StoredFile, error)
	// Open resolves a fragment taken from /uploads/* and opens it for reading.
	Open(fragment string) (*os.File, os.FileInfo, error)
	// PathFromURL maps a stored absolute URL back to a path under the root.
	PathFromURL(fileURL string) (string, error)
	// Delete removes the file behind fileURL. Failures are reported, never fatal.
	Delete(fileURL string) CleanupResult
	// List returns every stored file one folder deep, skipping the given top-level folders.
	List(exclude ...string) ([]StoredObject, error)
	URL(relPath string) string
}

type StoredFile struct {
	RelPath string
	AbsPath string
	URL     string
	Size    int64
}

type StoredObject struct {
	RelPath string
	AbsPath string
	URL     string
	Size    int64
	ModTime time.Time
}

// CleanupResult reports the outcome of a best-effort secondary deletion.
type CleanupResult struct {
	Path    string
	Removed bool
	Err     error
}

func (r CleanupResult) OK() bool {
	return r.Err == nil
}

type localStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage creates a disk-backed FileStorage rooted at root.
// Returned URLs are "{baseURL}/uploads/{relPath}".
func NewLocalStorage(root, baseURL string) (FileStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve uploads root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads root: %w", err)
	}

	return &localStorage{
		root:    abs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *localStorage) URL(relPath string) string {
	return s.baseURL + URLPrefix + filepath.ToSlash(relPath)
}

func (s *localStorage) Save(ctx context.Context, dir, name string, r io.Reader) (*StoredFile, error) {
	if err := validateDir(dir); err != nil {
		return nil, err
	}
	if !storedNamePattern.MatchString(name) {
		return nil, fmt.Errorf("stored name %q: %w", name, apperror.ErrInvalidPath)
	}

	targetDir, err := s.within(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, saveError(err)
	}

	fullPath := filepath.Join(targetDir, name)
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, saveError(err)
	}

	n, err := io.Copy(f, &contextReader{ctx: ctx, r: r})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(fullPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Printf("⚠️ failed to remove partial upload %s: %v", fullPath, rmErr)
		}
		return nil, saveError(err)
	}

	rel := dir + "/" + name
	return &StoredFile{
		RelPath: rel,
		AbsPath: fullPath,
		URL:     s.URL(rel),
		Size:    n,
	}, nil
}

func (s *localStorage) Open(fragment string) (*os.File, os.FileInfo, error) {
	path, err := s.resolve(fragment)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", fragment, apperror.ErrNotFound)
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", fragment, apperror.ErrNotFound)
	}
	return f, info, nil
}

// resolve maps a decoded /uploads/* fragment to an existing file.
// Fragments without a folder are legacy URLs and are searched for in every ticket folder.
func (s *localStorage) resolve(fragment string) (string, error) {
	if fragment == "" || strings.Contains(fragment, "..") || strings.ContainsAny(fragment, "\\\x00") {
		return "", apperror.ErrInvalidPath
	}

	if !strings.Contains(fragment, "/") {
		return s.resolveLegacy(fragment)
	}

	candidate, err := s.within(fragment)
	if err != nil {
		return "", err
	}
	if !isRegularFile(candidate) {
		return "", apperror.ErrNotFound
	}
	return candidate, nil
}

func (s *localStorage) resolveLegacy(name string) (string, error) {
	entries, err := os.ReadDir(s.root)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			candidate := filepath.Join(s.root, entry.Name(), name)
			if isRegularFile(candidate) {
				return candidate, nil
			}
		}
	}

	direct := filepath.Join(s.root, name)
	if isRegularFile(direct) {
		return direct, nil
	}
	return "", apperror.ErrNotFound
}

func (s *localStorage) PathFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", fileURL, apperror.ErrInvalidPath)
	}
	if !strings.HasPrefix(u.Path, URLPrefix) {
		return "", fmt.Errorf("%q is not an uploads URL: %w", fileURL, apperror.ErrInvalidPath)
	}

	rel := strings.TrimPrefix(u.Path, URLPrefix)
	if rel == "" || strings.Contains(rel, "..") || strings.ContainsAny(rel, "\\\x00") {
		return "", apperror.ErrInvalidPath
	}
	return s.within(rel)
}

func (s *localStorage) Delete(fileURL string) CleanupResult {
	path, err := s.PathFromURL(fileURL)
	if err != nil {
		return CleanupResult{Err: err}
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CleanupResult{Path: path}
		}
		return CleanupResult{Path: path, Err: err}
	}
	return CleanupResult{Path: path, Removed: true}
}

func (s *localStorage) List(exclude ...string) ([]StoredObject, error) {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	folders, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read uploads root: %w", err)
	}

	var objects []StoredObject
	for _, folder := range folders {
		if !folder.IsDir() {
			continue
		}
		if _, ok := skip[folder.Name()]; ok {
			continue
		}

		files, err := os.ReadDir(filepath.Join(s.root, folder.Name()))
		if err != nil {
			log.Printf("⚠️ skip unreadable upload folder %s: %v", folder.Name(), err)
			continue
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}
			rel := folder.Name() + "/" + file.Name()
			objects = append(objects, StoredObject{
				RelPath: rel,
				AbsPath: filepath.Join(s.root, folder.Name(), file.Name()),
				URL:     s.URL(rel),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}
	return objects, nil
}

// within joins rel onto the root and verifies the cleaned result does not escape it.
func (s *localStorage) within(rel string) (string, error) {
	candidate := filepath.Join(s.root, filepath.FromSlash(rel))
	r, err := filepath.Rel(s.root, candidate)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", apperror.ErrInvalidPath
	}
	return candidate, nil
}

func validateDir(dir string) error {
	if dir == "" {
		return apperror.ErrInvalidPath
	}
	for _, seg := range strings.Split(dir, "/") {
		if seg == "" || SanitizeSegment(seg) != seg {
			return fmt.Errorf("folder %q: %w", dir, apperror.ErrInvalidPath)
		}
	}
	return nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func saveError(err error) error {
	return apperror.New(http.StatusInternalServerError,
		"Gagal menyimpan file. Silakan coba lagi.",
		fmt.Errorf("%w: %w", apperror.ErrFileSave, err))
}

// contextReader stops a copy as soon as the request context is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
