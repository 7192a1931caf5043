// Command health-check probes the suite's dependencies. "check" probes once
// and exits; "wait" retries until everything is ready or attempts run out.
// Exit code 0 means healthy, 1 means not.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/miniapartment/e2e/internal/config"
	"github.com/miniapartment/e2e/internal/healthcheck"
	"github.com/miniapartment/e2e/internal/logger"
)

func main() {
	attempts := flag.Int("attempts", 30, "retry attempts in wait mode")
	interval := flag.Duration("interval", 2*time.Second, "delay between retries in wait mode")
	jsonOut := flag.Bool("json", false, "print the report as JSON")
	flag.Usage = usage
	flag.Parse()

	mode := flag.Arg(0)
	if mode == "" {
		mode = "check"
	}
	if mode != "check" && mode != "wait" {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.CI})

	checker := &healthcheck.Checker{
		HTTPTargets: []string{cfg.FrontendURL, cfg.BackendURL + "/api/health"},
		DBPath:      cfg.DBPath,
		RedisAddr:   cfg.RedisAddr,
		RedisPass:   cfg.RedisPassword,
		Log:         log,
	}

	var report healthcheck.Report
	var err error
	if mode == "wait" {
		report, err = checker.Wait(ctx, *attempts, *interval)
	} else {
		report = checker.Run(ctx)
	}

	if *jsonOut {
		json.NewEncoder(os.Stdout).Encode(report)
	} else {
		for _, s := range report.Results {
			state := "ok"
			if !s.Healthy {
				state = "FAIL: " + s.Error
			}
			fmt.Printf("%-40s %s (%s)\n", s.Name, state, s.Latency.Round(time.Millisecond))
		}
	}

	if err != nil || !report.Healthy() {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: health-check [flags] [check|wait]

Modes:
  check   probe every dependency once (default)
  wait    retry until healthy or attempts run out

Flags:`)
	flag.PrintDefaults()
}
