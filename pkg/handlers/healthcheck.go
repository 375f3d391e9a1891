package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	ramp "github.com/app-sre/ramp/pkg"
)

func Healthcheck(cfg *ramp.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker(
			"ramp", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Client.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Unable to reach RaMP API as part of healthcheck: %s", err)
						return errors.New("Unable to reach the RaMP API")
					}
					return nil
				},
			),
		),
	)
}
