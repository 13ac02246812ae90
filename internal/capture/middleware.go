package capture

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/config"
	"github.com/probelab/hdrprobe/internal/observability"
)

// Middleware wraps an http.Handler with additional functionality.
// Middlewares can be composed using the Chain function.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middlewares into a single middleware. Middlewares
// are applied in the order they are provided, with the first middleware being
// the outermost wrapper (executed first on request).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		// Apply in reverse order so first middleware wraps outermost.
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// CORS creates a middleware that handles Cross-Origin Resource Sharing using
// the github.com/rs/cors library. Browser-based clients pointed at the
// capture server would otherwise fail preflight before any headers arrive.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}

// RunID creates a middleware that tags every captured request with a unique
// identifier, echoed back in the X-Capture-Id header.
func RunID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			captureID := observability.GenerateRunID()
			ctx = observability.WithRunID(ctx, captureID)

			w.Header().Set("X-Capture-Id", captureID)

			observability.FromContext(ctx).Info("request captured",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BuildMiddlewareChain composes the capture middleware chain.
// Order matters: CORS -> RunID.
func BuildMiddlewareChain(corsConfig *config.CORSConfig) Middleware {
	return Chain(
		CORS(corsConfig),
		RunID(),
	)
}
