package middleware

import (
	"encoding/json"
	"net/http"

	ramp "github.com/app-sre/ramp/pkg"
	"github.com/app-sre/ramp/pkg/models"
)

const timeoutMessage = "Request timed out. Please try again."

// Timeout cancels the request context once cfg.RequestTimeout passes, which
// also aborts any upstream call made with it. The timeout reply is a
// QueryResponse like every other query reply.
func Timeout(cfg *ramp.Config) Middleware {
	body, _ := json.Marshal(&models.QueryResponse{Error: timeoutMessage})

	return func(h http.Handler) http.Handler {
		th := http.TimeoutHandler(h, cfg.RequestTimeout, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
