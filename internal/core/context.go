package core

import "context"

type contextKey int

const (
	actorKey contextKey = iota
	ipAddressKey
	userAgentKey
)

func withString(ctx context.Context, key contextKey, v string) context.Context {
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key contextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// ContextWithActor records the acting user for the request.
func ContextWithActor(ctx context.Context, actor string) context.Context {
	return withString(ctx, actorKey, actor)
}

// ActorFromContext returns the acting user, or "" when none was set.
func ActorFromContext(ctx context.Context) string { return stringFrom(ctx, actorKey) }

// ContextWithIPAddress and ContextWithUserAgent carry request metadata into
// audit entries.
func ContextWithIPAddress(ctx context.Context, ip string) context.Context {
	return withString(ctx, ipAddressKey, ip)
}

func ContextWithUserAgent(ctx context.Context, ua string) context.Context {
	return withString(ctx, userAgentKey, ua)
}

func IPAddressFromContext(ctx context.Context) string { return stringFrom(ctx, ipAddressKey) }

func UserAgentFromContext(ctx context.Context) string { return stringFrom(ctx, userAgentKey) }
