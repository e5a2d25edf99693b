// Package noop provides an EmailSender that logs instead of sending. Used in
// development and wherever SES is not configured.
package noop

import (
	"context"

	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates an EmailSender that only logs.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendRunSummary(_ context.Context, toAddress string, summary port.RunSummary) error {
	s.log.Info("run summary email suppressed (noop sender)",
		zap.String("to", toAddress),
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("lines_inserted", summary.LinesInserted))
	return nil
}
