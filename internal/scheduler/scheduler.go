package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"kitapantaups.id/api/pkg/apperror"
)

// ErrJobNotFound dikembalikan RunByName untuk nama job yang tidak terdaftar.
var ErrJobNotFound = apperror.NotFound("Job tidak ditemukan")

// Scheduler menjadwalkan dan menjalankan job pemeliharaan.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration

	mu   sync.Mutex
	jobs []Job
}

// NewScheduler membuat scheduler baru. timeout membatasi durasi satu eksekusi job.
func NewScheduler(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: timeout,
	}
}

// Register mendaftarkan job. Job dengan schedule otomatis dijadwalkan.
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	schedule := job.Schedule()
	if schedule == "" {
		log.Printf("📝 [%s] Registered as on-demand job", job.Name())
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.run(context.Background(), job) }); err != nil {
		log.Printf("⚠️ Failed to schedule job %s: %v", job.Name(), err)
		return fmt.Errorf("schedule %s: %w", job.Name(), err)
	}
	log.Printf("📅 [%s] Scheduled with cron: %s", job.Name(), schedule)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("🚀 Scheduler started with %d registered jobs", len(s.Jobs()))
}

// Stop menghentikan scheduler dan menunggu job yang sedang berjalan.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Scheduler stopped")
}

// RunByName menjalankan job tertentu secara manual.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	s.mu.Lock()
	var target Job
	for _, job := range s.jobs {
		if job.Name() == name {
			target = job
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		return fmt.Errorf("run %q: %w", name, ErrJobNotFound)
	}
	log.Printf("🎯 [%s] Running on-demand execution...", name)
	return s.run(ctx, target)
}

func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Printf("🧹 [%s] Starting job...", job.Name())
	if err := job.Execute(ctx); err != nil {
		log.Printf("❌ [%s] Job failed: %v", job.Name(), err)
		return err
	}
	log.Printf("✅ [%s] Job completed", job.Name())
	return nil
}
