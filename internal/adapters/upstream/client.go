// Package upstream is the HTTP client for the external sales aggregation backend
package upstream

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	perr "posdash/internal/platform/errors"
	"posdash/internal/platform/logger"
)

const (
	baseURLDefault   = "http://localhost:3001/api"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "posdash-api"
	defaultMaxRetry  = 2
	defaultRetryBase = 200 * time.Millisecond
	maxBody          = 8 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors and 502/503/504
	MaxRetries int
	RetryBase  time.Duration

	// Cache is optional; nil disables response caching
	Cache *Cache
}

// Client talks to the aggregation backend
// Concurrent identical GETs share one round trip.
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)

	group singleflight.Group
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("upstream"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// BaseURL is the configured backend root
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// Cache returns the response cache, possibly nil
func (c *Client) Cache() *Cache { return c.opts.Cache }

// Do issues one GET with retries and returns the body of a 2xx response
func (c *Client) Do(ctx context.Context, ep Endpoint, q url.Values) ([]byte, error) {
	target := c.opts.BaseURL + ep.Path
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s request build failed", ep.What)
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempts >= c.opts.MaxRetries {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s fetch failed", ep.What)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Str("path", ep.Path).Dur("retry_in", back).Int("attempt", attempts).Msg("upstream transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", ep.Path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("upstream http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
			_ = resp.Body.Close()
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s read failed", ep.What)
			}
			return body, nil
		case resp.StatusCode == http.StatusBadGateway,
			resp.StatusCode == http.StatusServiceUnavailable,
			resp.StatusCode == http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if attempts >= c.opts.MaxRetries {
				return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode}, perr.ErrorCodeUnavailable,
					"%s fetch failed: %d", ep.What, resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Int("attempt", attempts).Msg("upstream transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Wrapf(&StatusError{Status: resp.StatusCode, Body: string(body)}, perr.ErrorCodeUnavailable,
				"%s fetch failed: %d", ep.What, resp.StatusCode)
		}
	}
}

// get runs Do through the cache, collapsing identical concurrent calls
// The shared fetch is detached from any single caller's cancellation.
func (c *Client) get(ctx context.Context, ep Endpoint, q url.Values) ([]byte, error) {
	sig := ep.Path + "?" + q.Encode()
	ch := c.group.DoChan(sig, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		key, err := c.opts.Cache.BuildKey(shared, sig)
		if err != nil {
			c.log.Warn().Err(err).Msg("upstream cache key failed")
			return c.Do(shared, ep, q)
		}
		return c.opts.Cache.Fetch(shared, key, func(lc context.Context) ([]byte, error) {
			return c.Do(lc, ep, q)
		})
	})
	select {
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
