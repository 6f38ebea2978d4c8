package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"kitapantaups.id/api/pkg/apperror"
)

// ArchiveEntry is one stored file resolved for bulk download.
type ArchiveEntry struct {
	Name string
	Path string
}

// Archive is the zip of every locally stored attachment of one complaint.
type Archive struct {
	FileName string
	Entries  []ArchiveEntry
}

var entryNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "")

// Archive resolves the aggregated attachment list to local files. Entries are
// numbered by their position in the full list; ones that do not resolve are
// skipped and logged.
func (s *attachmentService) Archive(ctx context.Context, aduanID string) (*Archive, error) {
	aduan, items, err := s.collect(ctx, aduanID)
	if err != nil {
		return nil, err
	}
	name := aduan.NomorTiket
	if name == "" {
		name = aduan.ID.String()
	}

	archive := &Archive{FileName: fmt.Sprintf("lampiran-%s.zip", name)}
	for i, item := range items {
		path, err := s.fileStorage.PathFromURL(item.URL)
		if err != nil {
			log.Printf("⚠️ skip attachment %s in archive: %v", item.FileName, err)
			continue
		}
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			log.Printf("⚠️ skip attachment %s in archive: file missing", item.FileName)
			continue
		}
		archive.Entries = append(archive.Entries, ArchiveEntry{
			Name: fmt.Sprintf("%02d_%s", i+1, entryNameReplacer.Replace(item.FileName)),
			Path: path,
		})
	}

	if len(archive.Entries) == 0 {
		return nil, apperror.NotFound("Tidak ada lampiran untuk diunduh")
	}
	return archive, nil
}

// WriteTo streams the zip into w, one file at a time. A file that disappears
// between resolution and writing is skipped.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	for _, entry := range a.Entries {
		if err := addFile(zw, entry); err != nil {
			if os.IsNotExist(err) {
				log.Printf("⚠️ skip attachment %s in archive: %v", entry.Name, err)
				continue
			}
			return cw.n, err
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func addFile(zw *zip.Writer, entry ArchiveEntry) error {
	f, err := os.Open(entry.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entry.Name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
