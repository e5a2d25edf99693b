package resolve

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/normalize"
	"github.com/nordbooks/lineflow/internal/port"
)

// LocationResolver runs the exact → fuzzy → pending cascade for delivery
// locations. The exact stage also matches on the receiver name alone, since
// receiver names are often the only stable text on a delivery address block.
type LocationResolver struct {
	weights Weights
	accept  float64
	log     *zap.Logger
}

// NewLocationResolver creates a location resolver.
func NewLocationResolver(weights Weights, acceptThreshold float64, log *zap.Logger) *LocationResolver {
	return &LocationResolver{weights: weights, accept: acceptThreshold, log: log}
}

// Resolve maps a location variant identity to a canonical location ID.
func (r *LocationResolver) Resolve(ctx context.Context, repo port.LocationMappingRepository, snap *Snapshot, name, address, receiverName string) (Result, error) {
	if id, err := repo.FindExact(ctx, snap.OrganizationID, name, address, receiverName); err == nil {
		return Result{ID: &id}, nil
	} else if !errors.Is(err, domain.ErrMappingNotFound) {
		return Result{}, fmt.Errorf("locationResolver.Resolve: %w", err)
	}

	variantName := normalize.CleanText(name)
	variantAddr := normalize.CleanText(normalize.Address(address))
	bestID, score, found := bestMatch(snap.locations, r.weights, variantName, variantAddr)

	if found && score >= r.weights.Threshold && score >= r.accept {
		r.log.Debug("location fuzzy matched",
			zap.String("variant_name", name),
			zap.String("location_id", bestID.String()),
			zap.Float64("score", score))
		return Result{ID: &bestID, Score: score}, nil
	}

	pending := domain.PendingLocationMapping{
		OrganizationID:      snap.OrganizationID,
		VariantReceiverName: receiverName,
		VariantAddress:      address,
		SimilarityScore:     score,
	}
	if found {
		pending.SuggestedLocationID = &bestID
	}
	if err := repo.InsertPending(ctx, pending); err != nil {
		return Result{}, fmt.Errorf("locationResolver.Resolve: %w", err)
	}
	r.log.Info("location unresolved, pending review",
		zap.String("variant_receiver_name", receiverName),
		zap.Float64("best_score", score))
	return Result{Score: score, Pending: true}, nil
}
