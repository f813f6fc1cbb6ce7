package domain

import "fmt"

// PlaceholderImgURL is the fixed fallback image. A store's ImgURL is never
// empty: enrichment either resolves a photo or serves this constant.
const PlaceholderImgURL = "https://images.unsplash.com/photo-1498804103079-a6351b050096?ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&ixlib=rb-1.2.1&auto=format&fit=crop&w=2468&q=80"

// Store is the canonical place entity served by the directory. ID is the
// provider's external id and is unique across the repository. Score is owned
// by the repository once the store is persisted.
type Store struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	ImgURL       string `json:"imgUrl"`
	Score        int64  `json:"score"`
}

// RawCandidate is a provider-native place record. It is produced per discovery
// query and never persisted directly.
type RawCandidate struct {
	ExternalID    string
	Name          string
	Address       string
	CrossStreet   string
	Locality      string
	Neighborhoods []string
	Categories    []string
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrValidation, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrValidation, c.Longitude)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Latitude, c.Longitude)
}
