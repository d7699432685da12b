package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/gateway"
	"github.com/go-chi/chi/v5/middleware"
)

// Authorizer is satisfied by *gateway.Authorizer.
type Authorizer interface {
	Authorize(ctx context.Context, req gateway.Request) (*gateway.Policy, error)
}

// authorize answers 401 when the header is missing, 500 when the
// authorizer fails and 403 on a Deny policy.
func authorize(a Authorizer, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			p, err := a.Authorize(r.Context(), gateway.Request{
				AuthorizationToken: header,
				MethodArn:          r.Method + " " + r.URL.Path,
			})
			if err != nil {
				logger.Error(r.Context(), "authorizer failed", "path", r.URL.Path, "error", err.Error())
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			if !p.Allowed() {
				msg := p.Message()
				if msg == "" {
					msg = "User is not authorized to access this resource"
				}
				writeMessage(w, http.StatusForbidden, msg)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, p.PrincipalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
