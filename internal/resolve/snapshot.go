package resolve

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nordbooks/lineflow/internal/normalize"
	"github.com/nordbooks/lineflow/internal/port"
)

type candidate struct {
	id   uuid.UUID
	name string
	addr string
}

// Snapshot is one organization's canonical registries loaded into memory
// with comparison text pre-cleaned. Loaded once per batch run and read-only
// afterwards; it bounds the fuzzy stage to an in-memory scan instead of a
// registry query per line.
type Snapshot struct {
	OrganizationID uuid.UUID

	suppliers  []candidate
	locations  []candidate
	locationBU map[uuid.UUID]*uuid.UUID
}

// LoadSnapshot reads the supplier and location registries for one
// organization.
func LoadSnapshot(ctx context.Context, reg port.RegistryRepository, orgID uuid.UUID) (*Snapshot, error) {
	suppliers, err := reg.ListSuppliers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve.LoadSnapshot: %w", err)
	}
	locations, err := reg.ListLocations(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve.LoadSnapshot: %w", err)
	}

	snap := &Snapshot{
		OrganizationID: orgID,
		locationBU:     make(map[uuid.UUID]*uuid.UUID, len(locations)),
	}
	for _, s := range suppliers {
		snap.suppliers = append(snap.suppliers, candidate{
			id:   s.ID,
			name: normalize.CleanText(s.Name),
			addr: normalize.CleanText(s.Address),
		})
	}
	for _, l := range locations {
		snap.locations = append(snap.locations, candidate{
			id:   l.ID,
			name: normalize.CleanText(l.Name),
			addr: normalize.CleanText(l.Address),
		})
		snap.locationBU[l.ID] = l.BusinessUnitID
	}
	return snap, nil
}

// BusinessUnitFor returns the business unit of a location, or nil when the
// location is unknown or carries none.
func (s *Snapshot) BusinessUnitFor(locationID uuid.UUID) *uuid.UUID {
	return s.locationBU[locationID]
}

// bestMatch scans candidates for the highest blended score.
func bestMatch(cands []candidate, w Weights, variantName, variantAddr string) (uuid.UUID, float64, bool) {
	var (
		bestID    uuid.UUID
		bestScore float64
		found     bool
	)
	for _, c := range cands {
		if score := w.score(variantName, variantAddr, c.name, c.addr); score > bestScore {
			bestScore = score
			bestID = c.id
			found = true
		}
	}
	return bestID, bestScore, found
}
