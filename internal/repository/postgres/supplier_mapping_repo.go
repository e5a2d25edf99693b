package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type supplierMappingRepo struct {
	q querier
}

// FindExact treats a mapping stored without an address as name-only: it
// matches the variant name against any address.
func (r *supplierMappingRepo) FindExact(ctx context.Context, orgID uuid.UUID, variantName, variantAddress string) (uuid.UUID, error) {
	var supplierID uuid.UUID
	err := r.q.GetContext(ctx, &supplierID,
		`SELECT supplier_id FROM supplier_mappings
		 WHERE organization_id = $1
		   AND LOWER(TRIM(variant_supplier_name)) = LOWER(TRIM($2))
		   AND (variant_address IS NULL OR LOWER(TRIM(variant_address)) = LOWER(TRIM($3)))
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, variantName, variantAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, domain.ErrMappingNotFound
		}
		return uuid.Nil, fmt.Errorf("supplierMappingRepo.FindExact: %w", err)
	}
	return supplierID, nil
}

func (r *supplierMappingRepo) InsertPending(ctx context.Context, m domain.PendingSupplierMapping) error {
	// The partial unique index on (organization_id, variant identity) where
	// status = 'pending' makes re-seen variants a no-op.
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO pending_supplier_mappings (
			id, organization_id, variant_supplier_name, variant_address,
			suggested_supplier_id, similarity_score, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT DO NOTHING`,
		uuid.New(), m.OrganizationID, m.VariantSupplierName, m.VariantAddress,
		m.SuggestedSupplierID, m.SimilarityScore, domain.MappingStatusPending)
	if err != nil {
		return fmt.Errorf("supplierMappingRepo.InsertPending: %w", err)
	}
	return nil
}
