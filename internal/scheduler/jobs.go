package scheduler

import (
	"context"
	"log"
	"time"

	attachment "kitapantaups.id/api/internal/modules/attachment/service"
)

type OrphanSweeper interface {
	CleanupOrphanFiles(ctx context.Context) (*attachment.SweepReport, error)
}

type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// OrphanSweepJob menghapus file upload yang tidak dirujuk oleh data manapun.
type OrphanSweepJob struct {
	sweeper  OrphanSweeper
	schedule string
}

func NewOrphanSweepJob(sweeper OrphanSweeper, schedule string) *OrphanSweepJob {
	return &OrphanSweepJob{sweeper: sweeper, schedule: schedule}
}

func (j *OrphanSweepJob) Name() string     { return "orphan-sweep" }
func (j *OrphanSweepJob) Schedule() string { return j.schedule }

func (j *OrphanSweepJob) Execute(ctx context.Context) error {
	report, err := j.sweeper.CleanupOrphanFiles(ctx)
	if err != nil {
		return err
	}
	log.Printf("🧹 [%s] %s", j.Name(), report)
	return nil
}

// SessionPurgeJob menghapus refresh session yang sudah kadaluarsa.
type SessionPurgeJob struct {
	purger   SessionPurger
	schedule string
}

func NewSessionPurgeJob(purger SessionPurger, schedule string) *SessionPurgeJob {
	return &SessionPurgeJob{purger: purger, schedule: schedule}
}

func (j *SessionPurgeJob) Name() string     { return "session-purge" }
func (j *SessionPurgeJob) Schedule() string { return j.schedule }

func (j *SessionPurgeJob) Execute(ctx context.Context) error {
	start := time.Now()
	n, err := j.purger.PurgeExpiredSessions(ctx)
	if err != nil {
		return err
	}
	log.Printf("🧹 [%s] removed %d expired sessions in %s", j.Name(), n, time.Since(start).Round(time.Millisecond))
	return nil
}
