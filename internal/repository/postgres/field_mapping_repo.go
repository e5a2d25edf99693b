package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type fieldMappingRepo struct {
	q querier
}

func (r *fieldMappingRepo) ListByDataSource(ctx context.Context, dataSourceID uuid.UUID) ([]domain.FieldMapping, error) {
	var mappings []domain.FieldMapping
	err := r.q.SelectContext(ctx, &mappings,
		`SELECT data_source_id, source_field, target_field, transformation
		 FROM data_mappings
		 WHERE data_source_id = $1 AND is_active = TRUE
		 ORDER BY source_field`,
		dataSourceID)
	if err != nil {
		return nil, fmt.Errorf("fieldMappingRepo.ListByDataSource: %w", err)
	}
	if len(mappings) == 0 {
		return nil, domain.ErrNoDataMappings
	}
	return mappings, nil
}
