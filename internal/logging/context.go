package logging

import "context"

type contextKey struct{}

// ContextWithLogData attaches a per-request LogData so handlers can record
// timings and fields without threading it explicitly.
func ContextWithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, contextKey{}, logData)
}

// GetLogData returns the request's LogData, or nil when none was attached.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(contextKey{}).(*LogData)
	return logData
}
