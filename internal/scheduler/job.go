package scheduler

import "context"

// Job adalah tugas latar belakang yang dijalankan scheduler.
type Job interface {
	// Name mengembalikan nama unik job (untuk logging)
	Name() string

	// Schedule mengembalikan cron schedule string (misal: "@every 12h").
	// Return empty string untuk job yang hanya dijalankan manual.
	Schedule() string

	Execute(ctx context.Context) error
}
