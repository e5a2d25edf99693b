package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nordbooks/lineflow/internal/domain"
)

type sourceDocumentRepo struct {
	q querier
}

func (r *sourceDocumentRepo) ListUnprocessed(ctx context.Context) ([]domain.SourceDocument, error) {
	query, args, err := sqlx.In(
		`SELECT id, external_id, data, organization_id, business_unit_id,
		        data_source_id, status, processed_at, created_at
		 FROM source_documents
		 WHERE status IN (?)
		 ORDER BY created_at ASC`,
		domain.NonTerminalStatuses)
	if err != nil {
		return nil, fmt.Errorf("sourceDocumentRepo.ListUnprocessed: %w", err)
	}

	var docs []domain.SourceDocument
	if err := r.q.SelectContext(ctx, &docs, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("sourceDocumentRepo.ListUnprocessed: %w", err)
	}
	return docs, nil
}

func (r *sourceDocumentRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE source_documents SET status = $1, processed_at = $2 WHERE id = $3`,
		domain.DocumentStatusProcessed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("sourceDocumentRepo.MarkProcessed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *sourceDocumentRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE source_documents SET status = $1 WHERE id = $2`,
		domain.DocumentStatusFailed, id)
	if err != nil {
		return fmt.Errorf("sourceDocumentRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
