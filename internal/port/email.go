package port

import (
	"context"
	"time"
)

// RunSummary describes one completed batch sweep.
type RunSummary struct {
	StartedAt     time.Time
	Duration      time.Duration
	Documents     int
	Processed     int
	Failed        int
	LinesInserted int
}

// EmailSender delivers operational notifications.
type EmailSender interface {
	SendRunSummary(ctx context.Context, toAddress string, summary RunSummary) error
}
