// Command etl runs one batch sweep: every unprocessed source document is
// flattened, reconciled and resolved into invoice lines. The process exits
// non-zero only on infrastructure failure; failed documents are part of a
// normal run and reported in the summary.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nordbooks/lineflow/internal/config"
	"github.com/nordbooks/lineflow/internal/discount"
	"github.com/nordbooks/lineflow/internal/email/noop"
	"github.com/nordbooks/lineflow/internal/email/ses"
	"github.com/nordbooks/lineflow/internal/normalize"
	"github.com/nordbooks/lineflow/internal/port"
	"github.com/nordbooks/lineflow/internal/repository/postgres"
	"github.com/nordbooks/lineflow/internal/resolve"
	"github.com/nordbooks/lineflow/internal/service"
	s3storage "github.com/nordbooks/lineflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)

	var archive port.ObjectStorage
	if cfg.S3.Enabled {
		archive, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(logger)
	}

	engine := discount.NewEngine(discount.PolicyFromConfig(cfg.Discount), logger)
	suppliers := resolve.NewSupplierResolver(resolve.SupplierWeights(cfg.Matching), cfg.Matching.AcceptThreshold, logger)
	locations := resolve.NewLocationResolver(resolve.LocationWeights(cfg.Matching), cfg.Matching.AcceptThreshold, logger)
	categories := resolve.NewCategoryResolver(logger)

	processor := service.NewDocumentProcessor(
		store, engine, suppliers, locations, categories,
		normalize.LocaleFor(cfg.Batch.Locale), logger)

	runner := service.NewBatchRunner(store, processor, archive, emailSender, cfg.Email.ToAddress,
		service.RunnerConfig{
			Concurrency:     cfg.Batch.Concurrency,
			DocumentTimeout: cfg.Batch.DocumentTimeout,
			ArchivePayloads: cfg.Batch.ArchivePayload,
		}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := runner.Run(ctx); err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}
	return nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
