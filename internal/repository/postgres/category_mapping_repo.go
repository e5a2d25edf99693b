package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/domain"
)

type categoryMappingRepo struct {
	q querier
}

const categoryMappingColumns = `mapping_id, organization_id, category_id,
	variant_product_name, variant_product_code, variant_supplier_name, is_active`

func (r *categoryMappingRepo) get(ctx context.Context, op, query string, args ...interface{}) (*domain.CategoryMapping, error) {
	var m domain.CategoryMapping
	err := r.q.GetContext(ctx, &m, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, fmt.Errorf("categoryMappingRepo.%s: %w", op, err)
	}
	return &m, nil
}

func (r *categoryMappingRepo) FindExact(ctx context.Context, orgID uuid.UUID, name string, code, supplier *string) (*domain.CategoryMapping, error) {
	return r.get(ctx, "FindExact",
		`SELECT `+categoryMappingColumns+`
		 FROM category_mappings
		 WHERE organization_id = $1
		   AND variant_product_name = $2
		   AND variant_product_code IS NOT DISTINCT FROM $3
		   AND variant_supplier_name IS NOT DISTINCT FROM $4
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, name, code, supplier)
}

func (r *categoryMappingRepo) FindByCodeAndSupplier(ctx context.Context, orgID uuid.UUID, code, supplier string) (*domain.CategoryMapping, error) {
	return r.get(ctx, "FindByCodeAndSupplier",
		`SELECT `+categoryMappingColumns+`
		 FROM category_mappings
		 WHERE organization_id = $1
		   AND variant_product_code = $2
		   AND variant_supplier_name = $3
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, code, supplier)
}

func (r *categoryMappingRepo) FindByCodeOnly(ctx context.Context, orgID uuid.UUID, code string) (*domain.CategoryMapping, error) {
	return r.get(ctx, "FindByCodeOnly",
		`SELECT `+categoryMappingColumns+`
		 FROM category_mappings
		 WHERE organization_id = $1
		   AND variant_product_code = $2
		   AND variant_supplier_name IS NULL
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, code)
}

func (r *categoryMappingRepo) FindByNameAndCode(ctx context.Context, orgID uuid.UUID, name, code string) (*domain.CategoryMapping, error) {
	return r.get(ctx, "FindByNameAndCode",
		`SELECT `+categoryMappingColumns+`
		 FROM category_mappings
		 WHERE organization_id = $1
		   AND variant_product_name = $2
		   AND variant_product_code = $3
		   AND variant_supplier_name IS NULL
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, name, code)
}

func (r *categoryMappingRepo) FindByNameFold(ctx context.Context, orgID uuid.UUID, name string) (*domain.CategoryMapping, error) {
	return r.get(ctx, "FindByNameFold",
		`SELECT `+categoryMappingColumns+`
		 FROM category_mappings
		 WHERE organization_id = $1
		   AND LOWER(TRIM(variant_product_name)) = LOWER(TRIM($2))
		   AND is_active = TRUE
		 LIMIT 1`,
		orgID, name)
}

func (r *categoryMappingRepo) InsertPending(ctx context.Context, m domain.PendingCategoryMapping) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO pending_category_mappings (
			id, organization_id, variant_product_name, variant_product_code,
			variant_supplier_name, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT DO NOTHING`,
		uuid.New(), m.OrganizationID, m.VariantProductName, m.VariantProductCode,
		m.VariantSupplierName, domain.MappingStatusPending)
	if err != nil {
		return fmt.Errorf("categoryMappingRepo.InsertPending: %w", err)
	}
	return nil
}
