package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/vetrecords/internal/core"
)

// APIKeyHeader carries the caller's API key.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth resolves the acting user from the X-API-Key header.
// keys maps each accepted key to its actor. A matching key puts the actor
// in the request context.
//
// With require set, a missing key is 401 and an unknown key is 403.
// Without it, requests pass through and only a valid key sets an actor;
// imports then fail with core.ErrNoActingUser unless another middleware
// supplies one.
func APIKeyAuth(require bool, keys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				if require {
					slog.Warn("auth: missing API key",
						"path", r.URL.Path,
						"method", r.Method,
						"remote_addr", r.RemoteAddr,
					)
					writeAuthError(w, http.StatusUnauthorized, "missing API key", "AUTH_MISSING_KEY")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			actor, ok := lookupActor(apiKey, keys)
			if !ok {
				slog.Warn("auth: invalid API key",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
				)
				if require {
					writeAuthError(w, http.StatusForbidden, "invalid API key", "AUTH_INVALID_KEY")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			recordActor(r, actor)
			next.ServeHTTP(w, r.WithContext(core.ContextWithActor(r.Context(), actor)))
		})
	}
}

// WebhookActor sets actor as the acting user when no API key supplied one.
// An empty actor leaves the request unchanged.
func WebhookActor(actor string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor != "" && core.ActorFromContext(r.Context()) == "" {
				recordActor(r, actor)
				r = r.WithContext(core.ContextWithActor(r.Context(), actor))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// lookupActor finds the actor for key.
// Compares against every configured key in constant time so the response
// time does not reveal which key (if any) matched.
func lookupActor(key string, keys map[string]string) (string, bool) {
	var actor string
	found := 0
	for valid, owner := range keys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(valid)) == 1 {
			actor = owner
			found = 1
		}
	}
	return actor, found == 1
}

func writeAuthError(w http.ResponseWriter, status int, msg, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"error":"` + msg + `","code":"` + code + `"}`))
}
