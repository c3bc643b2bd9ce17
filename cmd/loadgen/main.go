package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/okian/marketnames/internal/loadgen"
)

const (
	defaultObservations = 1000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 10 * time.Second
	defaultSettle       = 30 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		observations = flag.Int("observations", defaultObservations, "Number of observations to post")
		events       = flag.String("events", "sr:match:1", "Comma separated event ids")
		langs        = flag.String("langs", "en", "Comma separated languages the service renders")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Concurrent submitters")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		settle       = flag.Duration("settle", defaultSettle, "How long to wait for rendering")
		seed         = flag.Uint64("seed", 0, "Generator seed, 0 for random")
		outputFile   = flag.String("output", "", "Write generated observations to this file")
		logFile      = flag.String("log", "", "Also log to this file")
		verbose      = flag.Bool("verbose", false, "Log rejected observations")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}
	if err := loadgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadgen.Config{
		BaseURL:       strings.TrimRight(*baseURL, "/"),
		Observations:  *observations,
		EventIDs:      splitList(*events),
		Languages:     splitList(*langs),
		Workers:       *workers,
		Timeout:       *timeout,
		SettleTimeout: *settle,
		Seed:          *seed,
		OutputFile:    *outputFile,
		Verbose:       *verbose,
	}
	if _, err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
