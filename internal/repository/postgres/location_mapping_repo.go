package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type locationMappingRepo struct {
	q querier
}

// FindExact treats a mapping stored without an address as name-only: it
// matches the receiver name against any address.
func (r *locationMappingRepo) FindExact(ctx context.Context, orgID uuid.UUID, variantName, variantAddress, receiverName string) (uuid.UUID, error) {
	var locationID uuid.UUID
	err := r.q.GetContext(ctx, &locationID,
		`SELECT location_id FROM location_mappings
		 WHERE organization_id = $1
		   AND LOWER(TRIM(variant_receiver_name)) = LOWER(TRIM($2))
		   AND (variant_address IS NULL OR LOWER(TRIM(variant_address)) = LOWER(TRIM($3)))
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, receiverName, variantAddress)
	if err == nil {
		return locationID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("locationMappingRepo.FindExact: %w", err)
	}

	// Some data sources put the location under a generic name field instead
	// of the receiver field. Retry on that identity before giving up.
	err = r.q.GetContext(ctx, &locationID,
		`SELECT location_id FROM location_mappings
		 WHERE organization_id = $1
		   AND LOWER(TRIM(variant_receiver_name)) = LOWER(TRIM($2))
		   AND (variant_address IS NULL OR LOWER(TRIM(variant_address)) = LOWER(TRIM($3)))
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, variantName, variantAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, domain.ErrMappingNotFound
		}
		return uuid.Nil, fmt.Errorf("locationMappingRepo.FindExact: %w", err)
	}
	return locationID, nil
}

func (r *locationMappingRepo) InsertPending(ctx context.Context, m domain.PendingLocationMapping) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO pending_location_mappings (
			id, organization_id, variant_receiver_name, variant_address,
			suggested_location_id, similarity_score, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT DO NOTHING`,
		uuid.New(), m.OrganizationID, m.VariantReceiverName, m.VariantAddress,
		m.SuggestedLocationID, m.SimilarityScore, domain.MappingStatusPending)
	if err != nil {
		return fmt.Errorf("locationMappingRepo.InsertPending: %w", err)
	}
	return nil
}
