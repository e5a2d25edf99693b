package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type trackerRepo struct {
	q querier
}

// MarkProcessed only advances records still in flight; a record already
// processed or failed by another run keeps its status. A document with no
// tracker record at all yields domain.ErrTrackerNotFound.
func (r *trackerRepo) MarkProcessed(ctx context.Context, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error {
	return r.mark(ctx, "trackerRepo.MarkProcessed", domain.TrackerStatusProcessed, documentID, orgID, locationID)
}

func (r *trackerRepo) MarkFailed(ctx context.Context, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error {
	return r.mark(ctx, "trackerRepo.MarkFailed", domain.TrackerStatusFailed, documentID, orgID, locationID)
}

func (r *trackerRepo) mark(ctx context.Context, op string, status domain.TrackerStatus, documentID string, orgID uuid.UUID, locationID *uuid.UUID) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE processed_tracker
		 SET status = $1, location_id = COALESCE($2, location_id), updated_at = $3
		 WHERE document_id = $4 AND organization_id = $5
		   AND status IN ($6, $7)`,
		status, locationID, time.Now().UTC(),
		documentID, orgID,
		domain.TrackerStatusPending, domain.TrackerStatusProcessing)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	// Zero rows is either a record already terminal, which stays as it is, or
	// no record at all.
	var exists bool
	err = r.q.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM processed_tracker
			WHERE document_id = $1 AND organization_id = $2
		 )`,
		documentID, orgID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return domain.ErrTrackerNotFound
	}
	return nil
}
