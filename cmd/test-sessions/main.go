package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumokids/playledger/internal/testsessions"
)

// Default configuration constants.
const (
	defaultNumSessions      = 500
	defaultDuplicates       = 25
	defaultWorkerMultiplier = 2
	defaultTimeout          = 30 * time.Second
	defaultTestTimeout      = 10 * time.Minute
)

func main() {
	cfg := &testsessions.Config{}
	var logFile string

	root := &cobra.Command{
		Use:   "test-sessions",
		Short: "Replay randomized match outcomes against a running engine",
		Long: `test-sessions generates randomized session outcomes across the known
game categories, posts them concurrently (with deliberate duplicate
retries mixed in), then fetches /summary and every /ledgers/{game} and
verifies ordinal contiguity, day means and the duplicate guard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := testsessions.SetupLogging(logFile); err != nil {
				return err
			}
			cfg.LogFile = logFile

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultTestTimeout)
			defer cancel()

			return testsessions.Run(ctx, cfg)
		},
	}

	root.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:8090", "Base URL of the service")
	root.Flags().IntVar(&cfg.NumSessions, "sessions", defaultNumSessions, "Number of sessions to generate and submit")
	root.Flags().IntVar(&cfg.Duplicates, "duplicates", defaultDuplicates, "Extra retries of already-sent session IDs")
	root.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
	root.Flags().DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	root.Flags().StringVar(&cfg.OutputFile, "output", "", "Output file for generated sessions (default: generated_sessions_TIMESTAMP.json)")
	root.Flags().StringVar(&logFile, "log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
	root.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
