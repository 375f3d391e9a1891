package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	ramp "github.com/app-sre/ramp/pkg"
	"github.com/app-sre/ramp/pkg/audit"
	"github.com/app-sre/ramp/pkg/endpoint"
	"github.com/app-sre/ramp/pkg/models"
)

const maxRequestBytes = 1 << 20

// Audit records submissions to known endpoints. Requests for an unknown
// endpoint are passed through untouched and left to the handler.
func Audit(cfg *ramp.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				b       bytes.Buffer
				request models.QueryRequest
			)

			e, err := endpoint.Lookup(mux.Vars(r)[endpointVar])
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
			if _, err := io.Copy(&b, r.Body); err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					cfg.Logger.Warnf("Request body for %s exceeds %d bytes", e.Path, mbe.Limit)
					respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", mbe.Limit))
					return
				}
				cfg.Logger.Errorf("Unable to copy request body: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}
			_ = r.Body.Close()

			r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

			if err := json.Unmarshal(b.Bytes(), &request); err != nil {
				cfg.Logger.Debugf("Unable to unmarshal request body: %s", err)
				h.ServeHTTP(w, r)
				return
			}

			query := &audit.QueryData{
				Endpoint:  e.Path,
				Input:     endpoint.SplitList(request.Input),
				Options:   options(&request),
				Timestamp: time.Now().Unix(),
			}
			if err := cfg.LoggerAudit.Write(query); err != nil {
				cfg.Logger.Errorf("Unable to write audit: %s", err)
			}

			ctx := context.WithValue(r.Context(), ContextKeyRequest, &request)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func options(q *models.QueryRequest) map[string]string {
	aux := make(map[string]string)

	for k, v := range map[string]string{
		endpoint.OptionAnalyteType: q.AnalyteType,
		endpoint.OptionMatch:       q.Match,
		endpoint.OptionNamesOrIDs:  q.NamesOrIDs,
		endpoint.OptionFormat:      q.Format,
	} {
		if v != "" {
			aux[k] = v
		}
	}

	if len(aux) == 0 {
		return nil
	}
	return aux
}
