// Package httpapi is the local execution platform: it turns HTTP requests
// into handler invocations, runs the authorizer in front of protected
// routes and writes handler responses back.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
)

const maxBodyBytes = 1 << 20

type ctxKey string

const principalKey ctxKey = "principal"

// Principal returns the caller identity set by the authorizer middleware.
func Principal(ctx context.Context) string {
	p, _ := ctx.Value(principalKey).(string)
	return p
}

func toRequest(w http.ResponseWriter, r *http.Request) (services.Request, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return services.Request{}, err
	}

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return services.Request{Method: r.Method, Headers: headers, Body: string(body)}, nil
}

// invoke runs h for one request. Handler errors become a 500, mirroring
// what a serverless platform reports for a failed invocation.
func invoke(h services.Handler, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := toRequest(w, r)
		if err != nil {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}

		resp, err := h.Handle(r.Context(), req)
		if err != nil {
			logger.Error(r.Context(), "handler failed", "path", r.URL.Path, "method", r.Method, "error", err.Error())
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		_, _ = io.WriteString(w, resp.Body)
	}
}

type messageBody struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(messageBody{Message: msg})
}
