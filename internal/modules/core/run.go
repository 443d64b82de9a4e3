package core

import "context"

type contextKey string

const runIDContextKey contextKey = "run_id"

// WithRunID tags the context with an identifier for one CLI invocation.
// The logging pipeline behavior picks it up so log lines of the same
// run can be correlated.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

func RunID(ctx context.Context) string {
	runID, _ := ctx.Value(runIDContextKey).(string)
	return runID
}
