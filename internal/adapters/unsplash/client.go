// internal/adapters/unsplash/client.go
package unsplash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"coffee_finder/internal/adapters/observability"
	"coffee_finder/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
}

func New(base, key string) *Client {
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
		key:  key,
	}
}

// ResolveImage looks up one representative photo for the candidate. Every
// failure path (missing key, network, non-200, empty result) degrades to the
// placeholder; errors are logged, never propagated.
func (c *Client) ResolveImage(ctx context.Context, candidate domain.RawCandidate) string {
	if c.key == "" {
		return domain.PlaceholderImgURL
	}

	query := candidate.Name
	if query == "" {
		query = "coffee shop"
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return domain.PlaceholderImgURL
	}
	req.Header.Set("Authorization", "Client-ID "+c.key)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("candidate", candidate.ExternalID).Msg("unsplash lookup failed")
		observability.ObserveExternal("unsplash", "search_photos", 0, time.Since(start))
		return domain.PlaceholderImgURL
	}
	defer resp.Body.Close()
	observability.ObserveExternal("unsplash", "search_photos", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return domain.PlaceholderImgURL
	}

	var out struct {
		Results []struct {
			URLs struct {
				Small string `json:"small"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PlaceholderImgURL
	}
	if len(out.Results) == 0 || out.Results[0].URLs.Small == "" {
		return domain.PlaceholderImgURL
	}
	return out.Results[0].URLs.Small
}
