package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/app-sre/ramp/pkg/models"
)

type ctxKey string

// ContextKeyRequest holds the decoded *models.QueryRequest once Audit has
// read the body.
const ContextKeyRequest ctxKey = "request"

const endpointVar = "endpoint"

type Middleware func(http.Handler) http.Handler

func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(&models.QueryResponse{Error: message})
}
