package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/port"
)

// CategoryResult is the outcome of product-category resolution; it carries
// both the category and the specific mapping that produced it.
type CategoryResult struct {
	CategoryID *uuid.UUID
	MappingID  *uuid.UUID
	Pending    bool
}

// CategoryResolver maps product variant identities to canonical categories.
// Product codes are more stable than OCR'd free text, so code-based lookups
// outrank name-based ones: exact(name+code+supplier) → code+supplier →
// code only → name+code → case-insensitive name → pending.
type CategoryResolver struct {
	log *zap.Logger
}

// NewCategoryResolver creates a category resolver.
func NewCategoryResolver(log *zap.Logger) *CategoryResolver {
	return &CategoryResolver{log: log}
}

// Resolve walks the lookup ladder for one product. A line without a product
// name goes straight to pending without a review record; there is nothing to
// review.
func (r *CategoryResolver) Resolve(ctx context.Context, repo port.CategoryMappingRepository, orgID uuid.UUID, productName, productCode, supplierName string) (CategoryResult, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return CategoryResult{Pending: true}, nil
	}
	code := strptr(productCode)
	supplier := strptr(supplierName)

	steps := []func(context.Context) (*domain.CategoryMapping, error){
		func(ctx context.Context) (*domain.CategoryMapping, error) {
			return repo.FindExact(ctx, orgID, productName, code, supplier)
		},
	}
	if code != nil && supplier != nil {
		steps = append(steps, func(ctx context.Context) (*domain.CategoryMapping, error) {
			return repo.FindByCodeAndSupplier(ctx, orgID, *code, *supplier)
		})
	}
	if code != nil {
		steps = append(steps,
			func(ctx context.Context) (*domain.CategoryMapping, error) {
				return repo.FindByCodeOnly(ctx, orgID, *code)
			},
			func(ctx context.Context) (*domain.CategoryMapping, error) {
				return repo.FindByNameAndCode(ctx, orgID, productName, *code)
			},
		)
	}
	steps = append(steps, func(ctx context.Context) (*domain.CategoryMapping, error) {
		return repo.FindByNameFold(ctx, orgID, productName)
	})

	for _, step := range steps {
		m, err := step(ctx)
		if err == nil {
			return CategoryResult{CategoryID: &m.CategoryID, MappingID: &m.MappingID}, nil
		}
		if !errors.Is(err, domain.ErrMappingNotFound) {
			return CategoryResult{}, fmt.Errorf("categoryResolver.Resolve: %w", err)
		}
	}

	err := repo.InsertPending(ctx, domain.PendingCategoryMapping{
		OrganizationID:      orgID,
		VariantProductName:  productName,
		VariantProductCode:  code,
		VariantSupplierName: supplier,
	})
	if err != nil {
		return CategoryResult{}, fmt.Errorf("categoryResolver.Resolve: %w", err)
	}
	r.log.Debug("product category unresolved, pending review",
		zap.String("product_name", productName))
	return CategoryResult{Pending: true}, nil
}

func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
