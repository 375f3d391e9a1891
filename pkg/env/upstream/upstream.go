package upstream

import (
	"net/url"

	"github.com/app-sre/ramp/pkg/env"
)

const (
	DefaultEndpoint = "https://rampdb.nih.gov/api"
	DefaultPort     = 8080
)

type Env struct {
	Endpoint string
	Port     int
}

func NewUpstreamEnv() *Env {
	return &Env{}
}

func (u *Env) Populate() error {
	endpoint := env.String("RAMP_ENDPOINT", DefaultEndpoint)
	if p, err := url.Parse(endpoint); err != nil || (p.Scheme != "http" && p.Scheme != "https") || p.Host == "" {
		return &env.TypeError{Name: "RAMP_ENDPOINT"}
	}
	u.Endpoint = endpoint

	port, err := env.Int("PORT", DefaultPort)
	if err != nil {
		return err
	}
	if port <= 0 || port > 65535 {
		return &env.TypeError{Name: "PORT"}
	}
	u.Port = port

	return nil
}
