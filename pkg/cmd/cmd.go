package cmd

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	ramp "github.com/app-sre/ramp/pkg"
	"github.com/app-sre/ramp/pkg/audit"
	"github.com/app-sre/ramp/pkg/client"
	"github.com/app-sre/ramp/pkg/env/upstream"
	"github.com/app-sre/ramp/pkg/handlers"
	"github.com/app-sre/ramp/pkg/middleware"
	"github.com/app-sre/ramp/pkg/version"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
)

func Run(logger *zap.SugaredLogger) error {
	production := ramp.Production()
	logger.Infof("Starting RAMP explorer version: %s", version.Version())

	ue := upstream.NewUpstreamEnv()
	if err := ue.Populate(); err != nil {
		return fmt.Errorf("unable to configure RaMP endpoint: %w", err)
	}

	timeout := ramp.RequestTimeout()
	logger.Infof("Production: %t, request timeout: %s", production, timeout)
	logger.Infof("Forwarding queries to RaMP endpoint: %s", ue.Endpoint)

	cfg := &ramp.Config{
		Client:         client.New(ue),
		LoggerAudit:    audit.NewLoggerAudit(logger),
		Logger:         logger,
		RequestTimeout: timeout,
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(ue.Port)),
		Handler:           Router(cfg, production),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      timeout + 10*time.Second,
	}

	logger.Infof("HTTP server starting on port: %d", ue.Port)
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

func Router(cfg *ramp.Config, production bool) http.Handler {
	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	queryChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Timeout(cfg)),
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Query(cfg))

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods(http.MethodGet)
	r.Handle("/api/endpoints", logHandler(defaultLogOutput, handlers.Endpoints())).Methods(http.MethodGet)
	r.Handle("/api/{endpoint}", logHandler(defaultLogOutput, queryChain)).Methods(http.MethodPost)

	return r
}
