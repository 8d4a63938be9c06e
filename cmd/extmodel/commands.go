package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/extmodel/config"
	"github.com/c360studio/extmodel/export"
	"github.com/c360studio/extmodel/graph"
	"github.com/c360studio/extmodel/metrics"
	"github.com/c360studio/extmodel/scanner"
	"github.com/c360studio/extmodel/watch"
)

// errRejected is returned by validate when any extension fails validation.
var errRejected = errors.New("extensions rejected")

// newScanner wires a scanner with an optional NATS publisher. The returned
// cleanup closes the connection.
func newScanner(cfg *config.Config, m *metrics.Collector) (*scanner.Scanner, func(), error) {
	opts := []scanner.Option{scanner.WithLogger(slog.Default())}
	if m != nil {
		opts = append(opts, scanner.WithMetrics(m))
	}

	cleanup := func() {}
	if cfg.NATS.URL != "" {
		nc, err := graph.Connect(cfg.NATS.URL, appName)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Connected to NATS", "url", cfg.NATS.URL, "subject", cfg.NATS.Subject)
		cleanup = nc.Close
		opts = append(opts, scanner.WithPublisher(graph.NewPublisher(nc,
			graph.WithSubject(cfg.NATS.Subject),
			graph.WithLogger(slog.Default()),
			graph.WithMetrics(m),
		)))
	}
	return scanner.New(cfg, opts...), cleanup, nil
}

func reportRejections(w io.Writer, res *scanner.Result) {
	for _, r := range res.Rejected {
		fmt.Fprintf(w, "REJECTED %s [%s]: %v\n", r.Type, r.Kind, r.Err)
	}
}

func validateCmd(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every extension under the source root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(nil)
			if err != nil {
				return err
			}
			s, cleanup, err := newScanner(cfg, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.Scan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, x := range res.Extensions {
				fmt.Fprintf(out, "OK       %s (%s, min version %s)\n", x.Name(), x.TypeName(), x.MinVersion())
			}
			reportRejections(out, res)
			if !res.OK() {
				return fmt.Errorf("%d of %d: %w",
					len(res.Rejected), len(res.Rejected)+len(res.Extensions), errRejected)
			}
			return nil
		},
	}
}

func describeCmd(f *globalFlags) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the accepted extension models",
		Long: `Describe scans the sources and writes every accepted extension model.

Formats: json, yaml, turtle, ntriples, jsonld. Rejected extensions are
reported on stderr and left out of the output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(&config.Config{Output: config.OutputConfig{Format: format}})
			if err != nil {
				return err
			}
			fmtOut, err := export.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			s, cleanup, err := newScanner(cfg, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.Scan(cmd.Context())
			if err != nil {
				return err
			}
			reportRejections(cmd.ErrOrStderr(), res)

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer file.Close()
				w = file
			}
			opts := export.FactOptions{Org: cfg.Org, Origin: res.Root}
			return export.Render(w, fmtOut, res.Extensions, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (default from config: yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func watchCmd(f *globalFlags) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate and publish whenever sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(&config.Config{Metrics: config.MetricsConfig{Addr: metricsAddr}})
			if err != nil {
				return err
			}

			m := metrics.New()
			s, cleanup, err := newScanner(cfg, m)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if cfg.Metrics.Addr != "" {
				srv := serveMetrics(cfg.Metrics.Addr)
				defer func() {
					shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
					defer done()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			out := cmd.OutOrStdout()
			w, err := watch.New(watch.Config{
				Debounce: cfg.Watch.Debounce,
				Logger:   slog.Default(),
				OnScan: func(res *scanner.Result, err error) {
					if err != nil {
						slog.Error("Scan failed", "error", err)
						return
					}
					fmt.Fprintf(out, "%s  %d accepted, %d rejected, %d facts\n",
						time.Now().Format(time.TimeOnly), len(res.Extensions), len(res.Rejected), res.Facts)
					reportRejections(out, res)
				},
			}, s)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")
	return cmd
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
