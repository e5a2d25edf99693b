package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/port"
	"github.com/nordbooks/lineflow/internal/resolve"
)

// RunnerConfig holds settings for one batch sweep.
type RunnerConfig struct {
	Concurrency     int
	DocumentTimeout time.Duration
	ArchivePayloads bool
}

// BatchRunner sweeps every unprocessed source document through the
// processor. One run is one sweep; scheduling reruns is the caller's job.
type BatchRunner struct {
	store     port.Store
	processor *DocumentProcessor
	archive   port.ObjectStorage
	email     port.EmailSender
	emailTo   string
	cfg       RunnerConfig
	log       *zap.Logger
}

// NewBatchRunner creates a batch runner. archive may be nil when payload
// archiving is disabled; emailTo may be empty to skip the summary email.
func NewBatchRunner(store port.Store, processor *DocumentProcessor, archive port.ObjectStorage, email port.EmailSender, emailTo string, cfg RunnerConfig, log *zap.Logger) *BatchRunner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &BatchRunner{
		store:     store,
		processor: processor,
		archive:   archive,
		email:     email,
		emailTo:   emailTo,
		cfg:       cfg,
		log:       log,
	}
}

// Run executes one sweep and returns its summary. Documents from the same
// organization share a registry snapshot; documents run concurrently up to
// the configured limit.
func (r *BatchRunner) Run(ctx context.Context) (port.RunSummary, error) {
	started := time.Now().UTC()

	docs, err := r.store.SourceDocuments().ListUnprocessed(ctx)
	if err != nil {
		return port.RunSummary{}, fmt.Errorf("batchRunner.Run: %w", err)
	}
	summary := port.RunSummary{StartedAt: started, Documents: len(docs)}
	if len(docs) == 0 {
		r.log.Info("no documents to process")
		return summary, nil
	}

	snapshots, err := r.loadSnapshots(ctx, docs)
	if err != nil {
		return port.RunSummary{}, fmt.Errorf("batchRunner.Run: %w", err)
	}

	r.log.Info("batch sweep started",
		zap.Int("documents", len(docs)),
		zap.Int("organizations", len(snapshots)),
		zap.Int("concurrency", r.cfg.Concurrency))

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		outcomes []Outcome
	)
	sem := make(chan struct{}, r.cfg.Concurrency)

	for i := range docs {
		doc := docs[i]

		sem <- struct{}{} // acquire
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release

			docCtx := ctx
			if r.cfg.DocumentTimeout > 0 {
				var cancel context.CancelFunc
				docCtx, cancel = context.WithTimeout(ctx, r.cfg.DocumentTimeout)
				defer cancel()
			}

			out := r.processor.Process(docCtx, &doc, snapshots[doc.OrganizationID])
			r.archivePayload(docCtx, &doc, out)

			mu.Lock()
			outcomes = append(outcomes, out)
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, out := range outcomes {
		if out.Failed {
			summary.Failed++
		} else {
			summary.Processed++
			summary.LinesInserted += out.LinesInserted
		}
	}
	summary.Duration = time.Since(started)

	r.log.Info("batch sweep finished",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("lines_inserted", summary.LinesInserted),
		zap.Duration("duration", summary.Duration))

	r.sendSummary(ctx, summary)
	return summary, nil
}

// loadSnapshots loads one registry snapshot per organization present in the
// batch. Snapshots are read-only after this point.
func (r *BatchRunner) loadSnapshots(ctx context.Context, docs []domain.SourceDocument) (map[uuid.UUID]*resolve.Snapshot, error) {
	snapshots := make(map[uuid.UUID]*resolve.Snapshot)
	for _, doc := range docs {
		if _, ok := snapshots[doc.OrganizationID]; ok {
			continue
		}
		snap, err := resolve.LoadSnapshot(ctx, r.store.Registry(), doc.OrganizationID)
		if err != nil {
			return nil, err
		}
		snapshots[doc.OrganizationID] = snap
	}
	return snapshots, nil
}

// archivePayload stores the raw payload of a document that reached a
// terminal status. Archive failures are logged and ignored; the archive is
// an audit trail, not part of the pipeline.
func (r *BatchRunner) archivePayload(ctx context.Context, doc *domain.SourceDocument, out Outcome) {
	if !r.cfg.ArchivePayloads || r.archive == nil {
		return
	}
	state := "processed"
	if out.Failed {
		state = "failed"
	}
	key := fmt.Sprintf("payloads/%s/%s/%s.json", doc.OrganizationID, state, doc.ExternalID)
	if err := r.archive.Put(ctx, key, doc.Data, "application/json"); err != nil {
		r.log.Warn("archiving payload",
			zap.String("external_id", doc.ExternalID),
			zap.Error(err))
	}
}

func (r *BatchRunner) sendSummary(ctx context.Context, summary port.RunSummary) {
	if r.email == nil || r.emailTo == "" {
		return
	}
	if err := r.email.SendRunSummary(ctx, r.emailTo, summary); err != nil {
		r.log.Warn("sending run summary email", zap.Error(err))
	}
}
