package app

import (
	"strings"

	"coffee_finder/internal/domain"
)

// NormalizeStore maps a provider candidate into the canonical Store. The id is
// the provider's stable external id, missing fields default to the empty
// string, and the score is always 0 — persisted scores are the repository's
// business, never the normalizer's.
func NormalizeStore(c domain.RawCandidate, imgURL string) domain.Store {
	return domain.Store{
		ID:           c.ExternalID,
		Name:         c.Name,
		Address:      composeAddress(c),
		Neighborhood: firstNeighborhood(c),
		ImgURL:       imgURL,
		Score:        0,
	}
}

func composeAddress(c domain.RawCandidate) string {
	parts := make([]string, 0, 2)
	if t := strings.TrimSpace(c.Address); t != "" {
		parts = append(parts, t)
	}
	if t := strings.TrimSpace(c.CrossStreet); t != "" {
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return strings.TrimSpace(c.Locality)
	}
	return strings.Join(parts, ", ")
}

func firstNeighborhood(c domain.RawCandidate) string {
	for _, n := range c.Neighborhoods {
		if t := strings.TrimSpace(n); t != "" {
			return t
		}
	}
	return ""
}
