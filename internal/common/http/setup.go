package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jokehub/jokehub/internal/common/constants"
	"github.com/jokehub/jokehub/internal/common/httpmetrics"
	"github.com/jokehub/jokehub/internal/common/logger"
)

// BuildBaseHandler wraps handler with the middleware every route shares.
// Order matters: headers must be set before anything can write a body, and
// recovery must sit outside the request-scope middleware it protects.
func BuildBaseHandler(log *logger.Logger, requestTimeout time.Duration, handler http.Handler) http.Handler {
	metricsWrap := httpmetrics.Middleware
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	timeout := RequestTimeoutMiddleware(requestTimeout)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	csp := ContentSecurityPolicyMiddleware("")

	return securityHeaders(csp(recovery(traceID(timeout(maxRequestSize(metricsWrap(handler)))))))
}

// RequestTimeoutMiddleware bounds every store call made under the request:
// repositories take the request context, so the deadline rides along.
func RequestTimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
