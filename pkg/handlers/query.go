package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	ramp "github.com/app-sre/ramp/pkg"
	"github.com/app-sre/ramp/pkg/client"
	"github.com/app-sre/ramp/pkg/endpoint"
	"github.com/app-sre/ramp/pkg/middleware"
	"github.com/app-sre/ramp/pkg/models"
	"github.com/app-sre/ramp/pkg/normalize"
)

const (
	fetchFailedMessage      = "Failed to fetch data. Please try again."
	unexpectedFormatMessage = "Unexpected response format."
)

func Query(cfg *ramp.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := endpoint.Lookup(mux.Vars(r)["endpoint"])
		if err != nil {
			respond(w, http.StatusNotFound, &models.QueryResponse{Error: err.Error()})
			return
		}
		ret := &models.QueryResponse{Title: e.Title}

		request, ok := r.Context().Value(middleware.ContextKeyRequest).(*models.QueryRequest)
		if !ok {
			request = &models.QueryRequest{}
			if err := json.NewDecoder(r.Body).Decode(request); err != nil {
				ret.Error = fmt.Sprintf("unable to decode request: %s", err)
				respond(w, http.StatusBadRequest, ret)
				return
			}
		}

		payload, err := e.Payload(request)
		if err != nil {
			ret.Error = err.Error()
			respond(w, http.StatusBadRequest, ret)
			return
		}

		raw, err := cfg.Client.Query(r.Context(), e.Path, payload)
		if errors.Is(err, normalize.ErrUnrecognizedShape) {
			cfg.Logger.Warnf("Unable to decode %s response: %s", e.Path, err)
			ret.Error = unexpectedFormatMessage
			respond(w, http.StatusUnprocessableEntity, ret)
			return
		}
		if err != nil {
			cfg.Logger.Errorf("Unable to query RaMP: %s", err)
			ret.Error = fetchFailedMessage
			code := http.StatusBadGateway
			if !errors.Is(err, client.ErrTransport) {
				code = http.StatusInternalServerError
			}
			respond(w, code, ret)
			return
		}

		table, err := normalize.Normalize(raw)
		switch {
		case errors.Is(err, normalize.ErrUnrecognizedShape):
			cfg.Logger.Warnf("Unable to normalize %s response: %s", e.Path, err)
			ret.Error = unexpectedFormatMessage
			respond(w, http.StatusUnprocessableEntity, ret)
			return
		case err != nil:
			cfg.Logger.Warnf("Unable to normalize %s response: %s", e.Path, err)
			ret.Error = fmt.Sprintf("Error processing data: %s", err)
			respond(w, http.StatusUnprocessableEntity, ret)
			return
		}

		ret.Columns = table.Columns
		ret.Rows = table.Values()
		cfg.Logger.Debugf("Normalized %d records from %s", len(ret.Rows), e.Path)

		respond(w, http.StatusOK, ret)
	}
}

func respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
