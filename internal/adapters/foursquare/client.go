// internal/adapters/foursquare/client.go
package foursquare

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"coffee_finder/internal/adapters/observability"
	"coffee_finder/internal/domain"
)

// Client queries the Foursquare Places search API. Results are returned in the
// provider's relevance order; the client never reorders and never retries past
// transient statuses (429/5xx) — broader retry policy belongs to the caller.
type Client struct {
	base  string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
	query string

	// defaults for the pre-geolocation render
	defaultLL    string
	defaultLimit int
}

func New(base, key string, rps int, query, defaultLL string, defaultLimit int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if defaultLimit <= 0 {
		defaultLimit = 6
	}
	return &Client{
		base:         base,
		hc:           &http.Client{Timeout: 20 * time.Second},
		key:          key,
		rl:           rate.NewLimiter(rate.Limit(rps), rps),
		query:        query,
		defaultLL:    defaultLL,
		defaultLimit: defaultLimit,
	}, nil
}

func (c *Client) Search(ctx context.Context, coords *domain.Coordinates, radiusMeters, limit int) ([]domain.RawCandidate, error) {
	q := url.Values{}
	q.Set("query", c.query)
	if coords != nil {
		q.Set("ll", coords.String())
		if radiusMeters > 0 {
			q.Set("radius", strconv.Itoa(radiusMeters))
		}
		if limit <= 0 {
			limit = 30
		}
	} else {
		q.Set("ll", c.defaultLL)
		limit = c.defaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))

	var out searchResponse
	if err := c.get(ctx, c.base+"/places/search?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	cands := make([]domain.RawCandidate, 0, len(out.Results))
	for _, r := range out.Results {
		cands = append(cands, toCandidate(r))
	}
	return cands, nil
}

func toCandidate(r placeResult) domain.RawCandidate {
	cats := make([]string, 0, len(r.Categories))
	for _, ct := range r.Categories {
		if ct.Name != "" {
			cats = append(cats, ct.Name)
		}
	}
	return domain.RawCandidate{
		ExternalID:    r.FsqID,
		Name:          r.Name,
		Address:       r.Location.Address,
		CrossStreet:   r.Location.CrossStreet,
		Locality:      r.Location.Locality,
		Neighborhoods: r.Location.Neighborhood,
		Categories:    cats,
	}
}

// ---- wire types ----

type searchResponse struct {
	Results []placeResult `json:"results"`
}

type placeResult struct {
	FsqID      string `json:"fsq_id"`
	Name       string `json:"name"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
	Location struct {
		Address      string   `json:"address"`
		CrossStreet  string   `json:"cross_street"`
		Locality     string   `json:"locality"`
		Neighborhood []string `json:"neighborhood"`
	} `json:"location"`
}

// ---- internals ----

// get performs a GET with client-side rate limiting, retries, and JSON decode
// into out. Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, fullURL string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	status := 0
	defer func() { observability.ObserveExternal("foursquare", "search", status, time.Since(start)) }()

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.key)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "coffee-finder/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		status = resp.StatusCode
		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
