package handlers

import (
	"net/http"

	"github.com/app-sre/ramp/pkg/endpoint"
)

// Endpoints lists the available queries so a client can build its forms.
func Endpoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, endpoint.All())
	}
}
