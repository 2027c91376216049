package shared

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ContextKey namespaces values this package stores in a request context.
type ContextKey string

const (
	// TraceIDKey holds the per-request trace ID echoed in error bodies.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the trace ID size in bytes; it is rendered as hex.
	TraceIDLength = 16
)

// SetTraceID returns a copy of ctx carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the trace ID stored in ctx, or "" if there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

func newTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// Name-based IDs stay unique per instant without the random source.
		slog.Error("failed to generate random trace ID", slog.String("error", err.Error()))
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(id[:])
}
