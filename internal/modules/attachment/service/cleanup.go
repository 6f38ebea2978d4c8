package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"kitapantaups.id/api/pkg/storage"
)

// SweepConfig controls the orphan-file sweep.
type SweepConfig struct {
	// GracePeriod protects files uploaded recently whose registration may still be in flight.
	GracePeriod time.Duration
	Now         func() time.Time
}

func (c SweepConfig) withDefaults() SweepConfig {
	if c.GracePeriod <= 0 {
		c.GracePeriod = 24 * time.Hour
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type SweepReport struct {
	Scanned int
	Kept    int
	Removed int
	Failed  int
}

func (r SweepReport) String() string {
	return fmt.Sprintf("scanned=%d kept=%d removed=%d failed=%d", r.Scanned, r.Kept, r.Removed, r.Failed)
}

// CleanupOrphanFiles deletes stored complaint files older than the grace period
// that no document, follow-up or legacy letter field refers to. Profile photos
// are never touched.
func (s *attachmentService) CleanupOrphanFiles(ctx context.Context) (*SweepReport, error) {
	urls, err := s.docRepo.ReferencedURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load referenced files: %w", err)
	}
	refs := newReferenceSet(urls)

	objects, err := s.fileStorage.List(storage.ProfilesDir)
	if err != nil {
		return nil, err
	}

	cutoff := s.sweep.Now().Add(-s.sweep.GracePeriod)
	report := &SweepReport{}
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		if obj.ModTime.After(cutoff) || refs.contains(obj.RelPath) {
			report.Kept++
			continue
		}

		if result := s.fileStorage.Delete(obj.URL); !result.OK() {
			log.Printf("❌ failed to remove orphan %s: %v", obj.RelPath, result.Err)
			report.Failed++
			continue
		}
		report.Removed++
	}
	return report, nil
}

// referenceSet indexes referenced files by relative path. Legacy URLs carry no
// folder, so they protect every file with that name.
type referenceSet struct {
	paths map[string]struct{}
	names map[string]struct{}
}

func newReferenceSet(urls []string) referenceSet {
	set := referenceSet{paths: map[string]struct{}{}, names: map[string]struct{}{}}
	for _, raw := range urls {
		rel, ok := uploadsRelPath(raw)
		if !ok {
			continue
		}
		if strings.Contains(rel, "/") {
			set.paths[rel] = struct{}{}
		} else {
			set.names[rel] = struct{}{}
		}
	}
	return set
}

func (r referenceSet) contains(rel string) bool {
	if _, ok := r.paths[rel]; ok {
		return true
	}
	name := rel[strings.LastIndex(rel, "/")+1:]
	_, ok := r.names[name]
	return ok
}

func uploadsRelPath(raw string) (string, bool) {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	idx := strings.Index(p, storage.URLPrefix)
	if idx < 0 {
		return "", false
	}
	rel := p[idx+len(storage.URLPrefix):]
	return rel, rel != ""
}
