package services

import "context"

type contextKey string

const (
	resellerIDKey contextKey = "reseller_id"
	channelKey    contextKey = "channel"
	requestIDKey  contextKey = "request_id"
)

// WithResellerID annotates context with the reseller the event belongs to.
func WithResellerID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, resellerIDKey, id)
}

// ResellerIDFromContext extracts the reseller identifier if present.
func ResellerIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(resellerIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithChannel annotates context with the notification channel being dispatched.
func WithChannel(ctx context.Context, channel string) context.Context {
	if channel == "" {
		return ctx
	}
	return context.WithValue(ctx, channelKey, channel)
}

// ChannelFromContext returns the channel name if present.
func ChannelFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(channelKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
