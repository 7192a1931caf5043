// Package healthcheck probes the dependencies the suite needs before a run:
// the web application over HTTP, the sqlite database file, and Redis when
// one is configured.
package healthcheck

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/miniapartment/e2e/internal/rental"
)

// Status of one probed dependency.
type Status struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
	Error   string        `json:"error,omitempty"`
}

// Report is the outcome of probing every configured dependency.
type Report struct {
	Checked time.Time `json:"checked"`
	Results []Status  `json:"results"`
}

// Healthy reports whether every dependency passed.
func (r Report) Healthy() bool {
	for _, s := range r.Results {
		if !s.Healthy {
			return false
		}
	}
	return len(r.Results) > 0
}

// Checker probes a set of dependencies.
type Checker struct {
	HTTPTargets []string // URLs that must answer 2xx
	DBPath      string   // sqlite file; empty disables the probe
	RedisAddr   string   // host:port; empty disables the probe
	RedisPass   string
	Timeout     time.Duration
	Log         zerolog.Logger
}

// Run probes every configured dependency once.
func (c *Checker) Run(ctx context.Context) Report {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	report := Report{Checked: time.Now()}
	for _, target := range c.HTTPTargets {
		report.Results = append(report.Results, c.probe(ctx, "http "+target, timeout, func(ctx context.Context) error {
			return probeHTTP(ctx, target)
		}))
	}
	if c.DBPath != "" {
		report.Results = append(report.Results, c.probe(ctx, "database", timeout, func(ctx context.Context) error {
			return probeDB(ctx, c.DBPath)
		}))
	}
	if c.RedisAddr != "" {
		report.Results = append(report.Results, c.probe(ctx, "redis", timeout, func(ctx context.Context) error {
			return probeRedis(ctx, c.RedisAddr, c.RedisPass)
		}))
	}
	return report
}

// Wait retries Run until every dependency is healthy or attempts run out.
// Backoff is a flat interval; a health check does not need jitter.
func (c *Checker) Wait(ctx context.Context, attempts int, interval time.Duration) (Report, error) {
	var report Report
	for i := 0; i < attempts; i++ {
		report = c.Run(ctx)
		if report.Healthy() {
			return report, nil
		}
		c.Log.Warn().Int("attempt", i+1).Int("of", attempts).Msg("dependencies not ready")
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-time.After(interval):
		}
	}
	return report, fmt.Errorf("dependencies not healthy after %d attempts", attempts)
}

func (c *Checker) probe(ctx context.Context, name string, timeout time.Duration, fn func(context.Context) error) Status {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	status := Status{Name: name, Healthy: err == nil, Latency: time.Since(start)}
	if err != nil {
		status.Error = err.Error()
		c.Log.Warn().Str("dependency", name).Err(err).Msg("probe failed")
	} else {
		c.Log.Debug().Str("dependency", name).Dur("latency", status.Latency).Msg("probe ok")
	}
	return status
}

func probeHTTP(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func probeDB(ctx context.Context, path string) error {
	db, err := sql.Open(rental.SQLiteDriverName, path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	var one int
	return db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

func probeRedis(ctx context.Context, addr, password string) error {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	defer client.Close()
	return client.Ping(ctx).Err()
}
