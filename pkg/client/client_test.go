package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app-sre/ramp/pkg/env/upstream"
	"github.com/app-sre/ramp/pkg/models"
	"github.com/app-sre/ramp/pkg/version"
)

func TestNew(t *testing.T) {
	cases := []struct {
		description string
		expected    *upstream.Env
		given       Option
	}{
		{
			"using option that updates internal state",
			&upstream.Env{Endpoint: "http://test"},
			func(c *Client) {
				c.UpstreamEnv.Endpoint = "http://test"
			},
		},
		{
			"using option that does nothing",
			&upstream.Env{},
			func(c *Client) {
				// No-op.
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			actual := New(&upstream.Env{}, tc.given)

			assert.NotNil(t, actual)
			assert.NotNil(t, actual.client)
			assert.Equal(t, tc.expected, actual.UpstreamEnv)
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	expected := &http.Client{Timeout: time.Second}
	actual := New(&upstream.Env{}, WithHTTPClient(expected))

	assert.Same(t, expected, actual.client)
}

func TestURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		want        string
	}{
		{
			"endpoint without trailing slash",
			"https://rampdb.nih.gov/api",
			"https://rampdb.nih.gov/api/pathways-from-analytes",
		},
		{
			"endpoint with trailing slash",
			"https://rampdb.nih.gov/api/",
			"https://rampdb.nih.gov/api/pathways-from-analytes",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			c := New(&upstream.Env{Endpoint: tc.given})

			assert.Equal(t, tc.want, c.URL("pathways-from-analytes"))
		})
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       any
		handler     func(*bytes.Buffer, *http.Header) func(http.ResponseWriter, *http.Request)
		expected    any
		error       bool
		transport   bool
		message     string
		request     string
	}{
		{
			"valid query with list response",
			&models.PathwaysFromAnalytes{Analytes: []string{"hmdb:HMDB0000064"}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					fmt.Fprintln(w, `[{"pathwayName": "Creatine metabolism", "count": 3}]`)
				}
			},
			[]any{map[string]any{"pathwayName": "Creatine metabolism", "count": json.Number("3")}},
			false,
			false,
			``,
			`{"analytes":["hmdb:HMDB0000064"]}`,
		},
		{
			"valid query with records key in response",
			&models.MetabolitesFromOntologies{Ontology: []string{"Liver"}, Format: "json"},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					fmt.Fprintln(w, `{"data": [{"metabolite": "Creatine"}]}`)
				}
			},
			map[string]any{"data": []any{map[string]any{"metabolite": "Creatine"}}},
			false,
			false,
			``,
			`{"ontology":["Liver"],"format":"json"}`,
		},
		{
			"valid query with scalar response",
			&models.PathwaysFromAnalytes{Analytes: []string{"x"}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					fmt.Fprintln(w, `"error"`)
				}
			},
			"error",
			false,
			false,
			``,
			`{"analytes":["x"]}`,
		},
		{
			"upstream error status",
			&models.PathwaysFromAnalytes{Analytes: []string{"x"}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					http.Error(w, "test", http.StatusInternalServerError)
				}
			},
			nil,
			true,
			true,
			`failed to fetch data from pathways-from-analytes: unexpected status 500`,
			`{"analytes":["x"]}`,
		},
		{
			"upstream not found status",
			&models.PathwaysFromAnalytes{Analytes: []string{"x"}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					http.NotFound(w, r)
				}
			},
			nil,
			true,
			true,
			`failed to fetch data from pathways-from-analytes: unexpected status 404`,
			`{"analytes":["x"]}`,
		},
		{
			"malformed JSON in upstream response",
			&models.PathwaysFromAnalytes{Analytes: []string{"x"}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					fmt.Fprintln(w, `{"data: [}`)
				}
			},
			nil,
			true,
			false,
			`unrecognized response shape: unable to decode response`,
			`{"analytes":["x"]}`,
		},
		{
			"HTML page with success status",
			&models.PathwaysFromAnalytes{Analytes: []string{"x"}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = io.Copy(b, r.Body)
					*h = r.Header.Clone()
					fmt.Fprintln(w, `<html><body>Service Unavailable</body></html>`)
				}
			},
			nil,
			true,
			false,
			`unable to read pathways-from-analytes response: unrecognized response shape`,
			`{"analytes":["x"]}`,
		},
		{
			"payload that cannot be marshaled",
			map[string]any{"test": func() {}},
			func(b *bytes.Buffer, h *http.Header) func(w http.ResponseWriter, r *http.Request) {
				return func(w http.ResponseWriter, r *http.Request) {
					// No-op.
				}
			},
			nil,
			true,
			false,
			`unable to marshal request to pathways-from-analytes`,
			``,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var (
				server  bytes.Buffer
				headers http.Header
			)

			s := httptest.NewServer(http.HandlerFunc(tc.handler(&server, &headers)))
			defer s.Close()

			c := New(&upstream.Env{Endpoint: s.URL}, WithHTTPClient(http.DefaultClient))
			actual, err := c.Query(context.TODO(), "pathways-from-analytes", tc.given)

			if tc.error {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.message)
				assert.Equal(t, tc.transport, errorIsTransport(err))
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.request, server.String())

			if tc.request != "" {
				assert.Equal(t, "application/json", headers.Get("Accept"))
				assert.Equal(t, "application/json; charset=utf-8", headers.Get("Content-Type"))
				assert.Equal(t, fmt.Sprintf("RAMP/%s", version.Version()), headers.Get("User-Agent"))
			}
		})
	}
}

func TestQueryUnreachable(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	s.Close()

	c := New(&upstream.Env{Endpoint: s.URL})
	actual, err := c.Query(context.TODO(), "pathways-from-analytes", &models.PathwaysFromAnalytes{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "failed to fetch data from pathways-from-analytes")
	assert.Nil(t, actual)
}

func TestQueryCancelledContext(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[]`)
	}))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	c := New(&upstream.Env{Endpoint: s.URL})
	_, err := c.Query(ctx, "pathways-from-analytes", &models.PathwaysFromAnalytes{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	c := New(&upstream.Env{Endpoint: s.URL})
	assert.NoError(t, c.Ping(context.TODO()))

	s.Close()

	err := c.Ping(context.TODO())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to reach RaMP")
}

func errorIsTransport(err error) bool {
	_, ok := err.(*TransportError)
	return ok
}
