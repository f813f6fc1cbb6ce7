// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"coffee_finder/internal/app"
	"coffee_finder/internal/domain"
)

type Handlers struct {
	D *app.DirectoryService
	S *app.StoreService

	// defaults applied when a /directory/near query omits radius or limit
	NearRadius int
	NearLimit  int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// directoryResponse carries the listing plus a displayable error. A failed
// discovery or geolocation renders as an empty/default list with the message
// set — never as a 5xx that would blank the page.
type directoryResponse struct {
	Stores []domain.Store `json:"stores"`
	Error  string         `json:"error,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/stores", h.createStore)
	s.mux.Get("/stores", h.getStore)
	s.mux.Put("/stores/vote", h.voteStore)
	s.mux.Get("/directory", h.listDefault)
	s.mux.Get("/directory/near", h.listNear)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) createStore(w http.ResponseWriter, r *http.Request) {
	var in domain.Store
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a JSON store")
		return
	}
	out, created, err := h.S.EnsurePersisted(r.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeProblem(w, http.StatusBadRequest, "Validation Error", err.Error())
			return
		}
		log.Error().Err(err).Str("id", in.ID).Msg("create store failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not create store")
		return
	}
	status := http.StatusOK // duplicate: existing record, untouched
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, out)
}

// getStore returns a sequence of 0 or 1 stores; an unknown id is an empty
// result, not an error.
func (h *Handlers) getStore(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "Validation Error", "id query parameter is required")
		return
	}
	out := []domain.Store{}
	st, err := h.S.GetByID(r.Context(), id)
	switch {
	case err == nil:
		out = append(out, st)
	case errors.Is(err, domain.ErrNotFound):
		// empty sequence
	default:
		log.Error().Err(err).Str("id", id).Msg("get store failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not read store")
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getStore body")
	}
}

func (h *Handlers) voteStore(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == "" {
		writeProblem(w, http.StatusBadRequest, "Validation Error", "body must carry a store id")
		return
	}
	st, err := h.S.Vote(r.Context(), in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "store was never created; vote has no target")
			return
		}
		log.Error().Err(err).Str("id", in.ID).Msg("vote failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not register vote")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handlers) listDefault(w http.ResponseWriter, r *http.Request) {
	stores, err := h.D.ListDefault(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("default discovery failed")
		writeJSON(w, http.StatusOK, directoryResponse{Stores: []domain.Store{}, Error: "could not load nearby stores"})
		return
	}
	writeJSON(w, http.StatusOK, directoryResponse{Stores: stores})
}

func (h *Handlers) listNear(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	radius, _ := strconv.Atoi(q.Get("radius"))
	if radius <= 0 {
		radius = h.NearRadius
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = h.NearLimit
	}

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" && lngStr == "" {
		h.listNearMe(w, r, radius, limit)
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Error", "lat and lng must be numbers")
		return
	}
	coords := domain.Coordinates{Latitude: lat, Longitude: lng}

	stores, err := h.D.ListNear(r.Context(), coords, radius, limit)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeProblem(w, http.StatusBadRequest, "Validation Error", err.Error())
			return
		}
		log.Warn().Err(err).Str("ll", coords.String()).Msg("near discovery failed")
		writeJSON(w, http.StatusOK, directoryResponse{Stores: []domain.Store{}, Error: "could not load nearby stores"})
		return
	}
	writeJSON(w, http.StatusOK, directoryResponse{Stores: stores})
}

// listNearMe runs the geolocation tracker first. A geolocation failure keeps
// the directory on the default list and carries the tracker's message.
func (h *Handlers) listNearMe(w http.ResponseWriter, r *http.Request, radius, limit int) {
	stores, err := h.D.ListNearMe(r.Context(), radius, limit)
	if err != nil {
		log.Warn().Err(err).Msg("geolocation failed; serving default list")
		fallback, ferr := h.D.ListDefault(r.Context())
		if ferr != nil {
			fallback = []domain.Store{}
		}
		writeJSON(w, http.StatusOK, directoryResponse{Stores: fallback, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, directoryResponse{Stores: stores})
}
