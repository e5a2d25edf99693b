// Package resolve maps free-text variant identities from OCR onto canonical
// registry entries: exact mapping lookup first, fuzzy text match second, and
// a pending-review record when neither is confident enough. Resolution
// failure is never fatal at the line level.
package resolve

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/nordbooks/lineflow/internal/config"
)

// Weights tunes the fuzzy blend for one entity type. Name similarity
// dominates; the address only corroborates. When the name alone matches
// almost perfectly and the address disagrees badly, the address is treated
// as OCR garbage and ignored.
type Weights struct {
	Name            float64
	NameOnlyNameMin float64
	NameOnlyAddrMax float64
	Threshold       float64
}

// SupplierWeights builds the supplier scorer weights from configuration.
func SupplierWeights(cfg config.MatchingConfig) Weights {
	return Weights{
		Name:            cfg.SupplierNameWeight,
		NameOnlyNameMin: cfg.SupplierNameOnlyName,
		NameOnlyAddrMax: cfg.SupplierNameOnlyAddr,
		Threshold:       cfg.SupplierScoreThreshold,
	}
}

// LocationWeights builds the location scorer weights from configuration.
func LocationWeights(cfg config.MatchingConfig) Weights {
	return Weights{
		Name:            cfg.LocationNameWeight,
		NameOnlyNameMin: cfg.LocationNameOnlyName,
		NameOnlyAddrMax: cfg.LocationNameOnlyAddr,
		Threshold:       cfg.AcceptThreshold,
	}
}

// score blends partial-ratio similarity of name and address. Inputs must
// already be cleaned (normalize.CleanText).
func (w Weights) score(variantName, variantAddr, candName, candAddr string) float64 {
	nameScore := float64(fuzzy.PartialRatio(variantName, candName))
	addrScore := float64(fuzzy.PartialRatio(variantAddr, candAddr))

	if nameScore >= w.NameOnlyNameMin && addrScore < w.NameOnlyAddrMax {
		return nameScore
	}
	return w.Name*nameScore + (1-w.Name)*addrScore
}
