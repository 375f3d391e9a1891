package ramp

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/ramp/pkg/audit"
	"github.com/app-sre/ramp/pkg/client"
)

const defaultRequestTimeout = 2 * time.Minute

type Config struct {
	Client         *client.Client
	LoggerAudit    audit.Audit
	Logger         *zap.SugaredLogger
	RequestTimeout time.Duration
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

// RequestTimeout bounds a whole submission, upstream call included.
func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := parseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

// parseDuration accepts Go durations and bare seconds. The sign is ignored.
func parseDuration(s string) (time.Duration, error) {
	if i, err := strconv.Atoi(s); err == nil {
		s = fmt.Sprintf("%ds", i)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	if d < 0 {
		d = -d
	}

	return d, nil
}
