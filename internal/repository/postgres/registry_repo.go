package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type registryRepo struct {
	q querier
}

func (r *registryRepo) ListSuppliers(ctx context.Context, orgID uuid.UUID) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.q.SelectContext(ctx, &suppliers,
		`SELECT supplier_id, organization_id, name, COALESCE(address, '') AS address
		 FROM suppliers
		 WHERE organization_id = $1
		 ORDER BY name`,
		orgID)
	if err != nil {
		return nil, fmt.Errorf("registryRepo.ListSuppliers: %w", err)
	}
	return suppliers, nil
}

func (r *registryRepo) ListLocations(ctx context.Context, orgID uuid.UUID) ([]domain.Location, error) {
	var locations []domain.Location
	err := r.q.SelectContext(ctx, &locations,
		`SELECT location_id, organization_id, business_unit_id, name,
		        COALESCE(address, '') AS address
		 FROM locations
		 WHERE organization_id = $1
		 ORDER BY name`,
		orgID)
	if err != nil {
		return nil, fmt.Errorf("registryRepo.ListLocations: %w", err)
	}
	return locations, nil
}
