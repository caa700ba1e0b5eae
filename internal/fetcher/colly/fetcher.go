// Package collyfetcher implements harvest.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
)

// Config controls collector behavior.
type Config struct {
	UserAgent     string
	RespectRobots bool
	Timeout       time.Duration
}

// Fetcher performs single bounded-timeout requests with the Colly collector.
// It never retries; the orchestrator decides whether a source is skipped.
type Fetcher struct {
	cfg           Config
	transport     http.RoundTripper
	baseCollector *colly.Collector
}

// New builds a Fetcher.
func New(cfg Config) *Fetcher {
	c := colly.NewCollector(colly.Async(false))
	transport := newHTTPTransport()
	c.WithTransport(transport)

	return &Fetcher{
		cfg:           cfg,
		transport:     transport,
		baseCollector: c,
	}
}

// Fetch executes a single HTTP request (GET, or form-encoded POST when the
// source asks for it) and returns the raw document text. Failures map to
// *harvest.NetworkError for transport problems and *harvest.HTTPError for
// non-success statuses.
func (f *Fetcher) Fetch(ctx context.Context, src harvest.Source) (string, error) {
	collector := f.baseCollector.Clone()
	collector.WithTransport(f.transport)
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	collector.IgnoreRobotsTxt = !f.cfg.RespectRobots
	timeout := f.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	var (
		body       string
		statusCode int
		fetchErr   error
	)

	collector.OnRequest(func(r *colly.Request) {
		for key, values := range src.Headers {
			for _, v := range values {
				r.Headers.Add(key, v)
			}
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		body = string(r.Body)
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- f.visit(collector, src)
	}()

	select {
	case <-ctx.Done():
		return "", &harvest.NetworkError{URL: src.URL, Err: ctx.Err()}
	case err := <-done:
		if err == nil {
			err = fetchErr
		}
		switch {
		case err == nil:
			return body, nil
		case statusCode != 0 && (statusCode < 200 || statusCode >= 300):
			return "", &harvest.HTTPError{URL: src.URL, StatusCode: statusCode}
		default:
			return "", &harvest.NetworkError{URL: src.URL, Err: err}
		}
	}
}

func (f *Fetcher) visit(collector *colly.Collector, src harvest.Source) error {
	if strings.EqualFold(src.Method, http.MethodPost) {
		return collector.Post(src.URL, src.Form)
	}
	return collector.Visit(src.URL)
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
