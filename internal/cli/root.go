// Package cli implements the ledger command-line driver, built on
// github.com/spf13/cobra (the flag-parsing library attested in the
// example corpus's own CLI entrypoint, goXRPLd's cmd/xrpld) rather
// than the stdlib flag package, which no CLI in the pack reaches for.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ledger-engine/internal/config"
	"ledger-engine/internal/export"
	"ledger-engine/internal/ingest"
	"ledger-engine/internal/metrics"
	"ledger-engine/internal/pkg/components"
)

// Options holds the CLI's command-line flags.
type Options struct {
	Verbose     bool
	ServeAddr   string
	MetricsAddr string
}

// NewRootCommand builds the ledger CLI: one or more file paths,
// processed in order, transactions carrying across files as if
// concatenated.
func NewRootCommand() *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "ledger <file> [file...]",
		Short: "Replay per-client transaction streams into a final account summary.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"log per-event rejection reasons to the diagnostic stream")
	cmd.Flags().StringVar(&opts.ServeAddr, "serve", "",
		"after processing, block and serve the snapshot over HTTP at this address instead of exiting")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "",
		"expose a Prometheus /metrics endpoint at this address alongside batch processing")

	return cmd
}

// Run drives reader -> engine -> writer for every path, then writes the
// CSV account summary to stdout. It returns a non-nil error only for
// I/O failure or unreadable input; per-row decode errors and rejected
// events are diagnostics, not failures.
func Run(ctx context.Context, paths []string, opts Options, stdout, stderr io.Writer) error {
	cfg := config.Load()
	if opts.ServeAddr != "" {
		cfg.Serve.Addr = opts.ServeAddr
	}
	if opts.MetricsAddr != "" {
		cfg.Metrics.Addr = opts.MetricsAddr
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	container := components.New(cfg, stderr)

	if err := container.StartMetrics(); err != nil {
		return err
	}

	for _, path := range paths {
		if err := processFile(container, path, opts.Verbose); err != nil {
			return err
		}
	}

	snapshots, accountErrs := container.Engine.Snapshots()
	for client, err := range accountErrs {
		container.Logger.Error("account snapshot skipped", err, map[string]interface{}{"client": client})
	}
	metrics.SetAccountsActive(len(snapshots))

	if err := export.NewWriter(stdout).WriteAll(snapshots); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cfg.Serve.Addr != "" {
		return container.Serve(ctx)
	}
	return nil
}

func processFile(container *components.Container, path string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := ingest.NewReader(f, path)
	if err != nil {
		return fmt.Errorf("unreadable input %s: %w", path, err)
	}

	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if verbose {
				container.Logger.Warn("skipping malformed row", map[string]interface{}{"error": err.Error()})
			}
			continue
		}

		submitErr := container.Engine.Submit(ev)
		metrics.RecordOutcome(string(ev.Kind), submitErr)
		if submitErr != nil && verbose {
			container.Logger.Warn("event rejected", map[string]interface{}{
				"client": ev.ClientID,
				"tx":     ev.TxID,
				"kind":   string(ev.Kind),
				"reason": submitErr.Error(),
			})
		}
	}
	return nil
}
