// internal/adapters/iplocate/client.go
package iplocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coffee_finder/internal/domain"
	"coffee_finder/internal/geo"
)

// Client is the production LocationSource: a coarse IP-geolocation lookup in
// the ip-api.com response shape.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Locate(ctx context.Context) (domain.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/json?fields=status,message,lat,lon", nil)
	if err != nil {
		return domain.Coordinates{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Coordinates{}, ctx.Err()
		}
		return domain.Coordinates{}, fmt.Errorf("%w: %v", geo.ErrPositionUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusUnauthorized:
		return domain.Coordinates{}, geo.ErrPermissionDenied
	default:
		return domain.Coordinates{}, fmt.Errorf("%w: status %d", geo.ErrPositionUnavailable, resp.StatusCode)
	}

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %v", geo.ErrPositionUnavailable, err)
	}
	if body.Status != "success" {
		return domain.Coordinates{}, fmt.Errorf("%w: %s", geo.ErrPositionUnavailable, body.Message)
	}
	return domain.Coordinates{Latitude: body.Lat, Longitude: body.Lon}, nil
}
