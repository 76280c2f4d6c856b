package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/vetrecords/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleHealth reports liveness and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"imports": s.service.Limiter().Status(),
	})
}

// handleListKinds lists the registered record kinds.
func (s *Server) handleListKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    s.service.ListKinds(),
	})
}

// parseIntParam parses an integer query parameter. Missing yields def.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return def, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return i, nil
}

// parseBoolParam parses an optional boolean query parameter.
func parseBoolParam(r *http.Request, name string) (*bool, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", errBadRequest, name)
	}
	return &b, nil
}

// parseDateParam parses an optional date query parameter with the same
// layouts accepted in uploaded rows.
func parseDateParam(r *http.Request, name string, now time.Time) (*time.Time, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return nil, nil
	}
	t, err := core.RequiredDate(name, val, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// requestActor returns the acting user set by the auth middleware.
func requestActor(r *http.Request) string {
	return core.ActorFromContext(r.Context())
}

func kindParam(r *http.Request) string {
	return chi.URLParam(r, "kind")
}
