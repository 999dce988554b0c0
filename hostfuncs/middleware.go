package hostfuncs

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a ByteHandler. Middleware registered first runs outermost.
type Middleware func(next ByteHandler) ByteHandler

// PanicRecoveryMiddleware turns a handler panic into an INTERNAL_ERROR
// response so that a faulty handler cannot take the host down.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).ToJSON()
					err = nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware logs every invocation at debug level and failures at
// warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			name := FunctionName(ctx)
			start := time.Now()
			resp, err := next(ctx, payload)
			if err != nil {
				logger.WarnContext(ctx, "host function failed",
					slog.String("function", name),
					slog.Any("error", err))
				return resp, err
			}
			logger.DebugContext(ctx, "host function completed",
				slog.String("function", name),
				slog.Int("request_bytes", len(payload)),
				slog.Int("response_bytes", len(resp)),
				slog.Duration("duration", time.Since(start)))
			return resp, nil
		}
	}
}
