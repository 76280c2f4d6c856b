package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/vetrecords/internal/core"
	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// actorEcho writes the acting user seen by the handler.
var actorEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(core.ActorFromContext(r.Context())))
})

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]string{"k1": "alice", "k2": "bob"}

	tests := []struct {
		name       string
		require    bool
		key        string
		wantStatus int
		wantActor  string
	}{
		{"optional without key", false, "", http.StatusOK, ""},
		{"optional with key", false, "k2", http.StatusOK, "bob"},
		{"optional with unknown key", false, "zz", http.StatusOK, ""},
		{"required without key", true, "", http.StatusUnauthorized, ""},
		{"required with unknown key", true, "zz", http.StatusForbidden, ""},
		{"required with key", true, "k1", http.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/kinds", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()

			APIKeyAuth(tt.require, keys)(actorEcho).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantActor, rec.Body.String())
			}
		})
	}
}

func TestWebhookActor(t *testing.T) {
	t.Run("fills missing actor", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WebhookActor("integration")(actorEcho).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, "integration", rec.Body.String())
	})

	t.Run("keeps key actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(APIKeyHeader, "k1")
		rec := httptest.NewRecorder()
		chain := APIKeyAuth(false, map[string]string{"k1": "alice"})(WebhookActor("integration")(actorEcho))
		chain.ServeHTTP(rec, req)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("empty actor is a no-op", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WebhookActor("")(actorEcho).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Empty(t, rec.Body.String())
	})
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name     string
		trusted  []string
		remote   string
		realIP   string
		xff      string
		wantAddr string
	}{
		{"untrusted ignores headers", []string{"10.0.0.0/8"}, "203.0.113.5:4000", "1.2.3.4", "", "203.0.113.5:4000"},
		{"trusted uses X-Real-IP", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "1.2.3.4", "5.6.7.8", "1.2.3.4"},
		{"trusted uses first forwarded hop", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "", "5.6.7.8, 10.1.2.3", "5.6.7.8"},
		{"single address entry", []string{"127.0.0.1"}, "127.0.0.1:4000", "1.2.3.4", "", "1.2.3.4"},
		{"invalid header kept out", []string{"10.0.0.0/8"}, "10.1.2.3:4000", "not-an-ip", "", "10.1.2.3:4000"},
		{"no trusted proxies", nil, "10.1.2.3:4000", "1.2.3.4", "", "10.1.2.3:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantAddr, got)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.7 ", "", "bogus", "::1"})

	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.168.1.7/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::ffff:10.0.0.1]:8080"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", ClientIP(req))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "info", "text"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := Logger(APIKeyAuth(false, map[string]string{"k1": "alice"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("dup"))
		})))

	req := httptest.NewRequest(http.MethodPost, "/api/holding-codes", nil)
	req.Header.Set(APIKeyHeader, "k1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=409")
	assert.Contains(t, out, "bytes=3")
	assert.Contains(t, out, "actor=alice")
	assert.Contains(t, out, "path=/api/holding-codes")
}
