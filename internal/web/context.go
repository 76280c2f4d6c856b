package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/vetrecords/internal/core"
	mw "github.com/JonMunkholm/vetrecords/internal/web/middleware"
)

// WithRequestMetadata adds IP and User-Agent to context for audit entries.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, mw.ClientIP(r))
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
