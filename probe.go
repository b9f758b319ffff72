package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dfaith/pkg/config"
	"dfaith/pkg/models"
	"dfaith/pkg/remote"
	"dfaith/pkg/rpc"

	"go.uber.org/zap"
)

// runProbe validates cfg and then hits every configured endpoint once.
// Progress goes to out as text, or a single JSON report when jsonOut is set.
func runProbe(ctx context.Context, cfg config.Config, path string, out io.Writer, jsonOut bool) models.ProbeReport {
	report := models.ProbeReport{ConfigPath: path, ValidStructure: true}
	say := func(format string, args ...interface{}) {
		if !jsonOut {
			fmt.Fprintf(out, format, args...)
		}
	}

	say("Testing configuration at: %s\n", path)
	if err := cfg.Validate(); err != nil {
		report.ValidStructure = false
		for _, line := range strings.Split(err.Error(), "\n") {
			report.StructureErrors = append(report.StructureErrors, line)
			say("Error: %s\n", line)
		}
		writeReport(out, report, jsonOut)
		return report
	}

	client := remote.NewClient(remote.Opts{
		BaseURL:     cfg.APIBaseURL,
		FallbackURL: cfg.LeaderboardFallbackURL,
		Timeout:     cfg.RequestTimeout(),
		Logger:      zap.NewNop(),
	})

	add := func(r models.EndpointResult) {
		if r.Status == "ok" {
			say("  %-20s %s ... OK (%g)\n", r.Name, r.URL, r.Value)
		} else {
			say("  %-20s %s ... Failed: %s\n", r.Name, r.URL, r.Error)
		}
		report.Endpoints = append(report.Endpoints, r)
	}

	prices, err := client.FetchTokenPrices(ctx)
	add(result("token-prices", client.TokenPricesURL(), prices.DFaithEUR, prices.Source, err))

	n, err := client.FetchLeaderboard(ctx, client.LeaderboardURL())
	add(result("leaderboard", client.LeaderboardURL(), float64(n), models.SourcePrimary, err))

	if fb := client.FallbackURL(); fb != "" {
		n, err := client.FetchLeaderboard(ctx, fb)
		add(result("leaderboard-fallback", fb, float64(n), models.SourceFallback, err))
	}

	supply, err := rpc.NewSupplyReader(cfg.Chain).FetchSupply(ctx)
	supplyURL := "static"
	if cfg.Chain.Enabled() {
		supplyURL = cfg.Chain.TokenAddress
	}
	add(result("supply", supplyURL, supply.Supply, supply.Source, err))

	for _, u := range cfg.Chain.RPCURLs {
		latency, err := rpc.FetchRPCLatency(ctx, u)
		add(result("rpc", u, float64(latency.Milliseconds()), models.SourceChain, err))
	}

	report.Healthy = true
	for _, e := range report.Endpoints {
		if e.Status != "ok" {
			report.Healthy = false
		}
	}
	if report.Healthy {
		say("All endpoints reachable.\n")
	} else {
		say("\nWARNING: some endpoints failed; the reader will show previous or placeholder values.\n")
	}
	writeReport(out, report, jsonOut)
	return report
}

func result(name, url string, value float64, source string, err error) models.EndpointResult {
	r := models.EndpointResult{Name: name, URL: url, Source: source}
	if err != nil {
		r.Status = "error"
		r.Error = err.Error()
		return r
	}
	r.Status = "ok"
	r.Value = value
	return r
}

func writeReport(out io.Writer, report models.ProbeReport, jsonOut bool) {
	if !jsonOut {
		return
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}
