package middleware

import (
	"errors"
	"fmt"
	"net/http"

	ramp "github.com/app-sre/ramp/pkg"
)

func Recovery(cfg *ramp.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(err)
				}

				cfg.Logger.Errorw("Recovered from an error",
					"error", fmt.Sprint(rec),
					"path", r.URL.Path,
				)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			}()
			h.ServeHTTP(w, r)
		})
	}
}
