package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/normalize"
	"github.com/nordbooks/lineflow/internal/port"
)

// Result is the outcome of one resolution attempt. A nil ID with Pending set
// means the variant identity was recorded for manual review; the line
// proceeds with a pending flag.
type Result struct {
	ID      *uuid.UUID
	Score   float64
	Pending bool
}

// SupplierResolver runs the exact → fuzzy → pending cascade for suppliers.
type SupplierResolver struct {
	weights Weights
	accept  float64
	log     *zap.Logger
}

// NewSupplierResolver creates a supplier resolver.
func NewSupplierResolver(weights Weights, acceptThreshold float64, log *zap.Logger) *SupplierResolver {
	return &SupplierResolver{weights: weights, accept: acceptThreshold, log: log}
}

// Resolve maps a supplier variant identity to a canonical supplier ID.
// The exact-mapping stage short-circuits: a seeded mapping wins even when a
// different registry entry would score higher under fuzzy matching.
func (r *SupplierResolver) Resolve(ctx context.Context, repo port.SupplierMappingRepository, snap *Snapshot, name, address string) (Result, error) {
	if id, err := repo.FindExact(ctx, snap.OrganizationID, name, address); err == nil {
		return Result{ID: &id}, nil
	} else if !errors.Is(err, domain.ErrMappingNotFound) {
		return Result{}, fmt.Errorf("supplierResolver.Resolve: %w", err)
	}

	variantName := normalize.CleanText(name)
	variantAddr := normalize.CleanText(normalize.Address(address))
	bestID, score, found := bestMatch(snap.suppliers, r.weights, variantName, variantAddr)

	if found && score >= r.weights.Threshold && score >= r.accept {
		r.log.Debug("supplier fuzzy matched",
			zap.String("variant_name", name),
			zap.String("supplier_id", bestID.String()),
			zap.Float64("score", score))
		return Result{ID: &bestID, Score: score}, nil
	}

	pending := domain.PendingSupplierMapping{
		OrganizationID:      snap.OrganizationID,
		VariantSupplierName: name,
		VariantAddress:      address,
		SimilarityScore:     score,
	}
	if found {
		pending.SuggestedSupplierID = &bestID
	}
	if err := repo.InsertPending(ctx, pending); err != nil {
		return Result{}, fmt.Errorf("supplierResolver.Resolve: %w", err)
	}
	r.log.Info("supplier unresolved, pending review",
		zap.String("variant_name", name),
		zap.Float64("best_score", score))
	return Result{Score: score, Pending: true}, nil
}
