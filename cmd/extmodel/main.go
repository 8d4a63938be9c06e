// Package main provides the extmodel binary entry point.
// extmodel discovers and validates extension models in Java sources and
// describes or publishes the accepted models.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/extmodel/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "extmodel"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command. Non-empty values override files.
type globalFlags struct {
	configPath string
	logLevel   string
	root       string
	org        string
	include    []string
	exclude    []string
	workers    int
	natsURL    string
}

func rootCmd() *cobra.Command {
	f := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Extension model discovery and validation",
		Long: `extmodel reads extension sources, builds their declaration graph and
validates every extension it finds against the extension model rules.

Accepted models can be described as JSON, YAML or RDF, and published as
graph facts over NATS.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(f.logLevel)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML), layered over user and project config")
	pf.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&f.root, "root", "", "Source root (default: project config dir, git root or cwd)")
	pf.StringVar(&f.org, "org", "", "Organization prefix for entity IDs")
	pf.StringSliceVar(&f.include, "include", nil, "Source globs to include")
	pf.StringSliceVar(&f.exclude, "exclude", nil, "Source globs to exclude")
	pf.IntVar(&f.workers, "workers", 0, "Extensions parsed concurrently")
	pf.StringVar(&f.natsURL, "nats-url", "", "NATS server URL; facts are published when set")

	cmd.AddCommand(validateCmd(f), describeCmd(f), watchCmd(f))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func setupLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig layers defaults, user config, project config, --config and flags.
func (f *globalFlags) loadConfig(overrides *config.Config) (*config.Config, error) {
	layer := &config.Config{}
	if f.configPath != "" {
		fileCfg, err := config.LoadFromFile(f.configPath)
		if err != nil {
			return nil, err
		}
		layer.Merge(fileCfg)
	}
	layer.Merge(&config.Config{
		Org: f.org,
		Sources: config.SourcesConfig{
			Root:    f.root,
			Include: f.include,
			Exclude: f.exclude,
			Workers: f.workers,
		},
		NATS: config.NATSConfig{URL: f.natsURL},
	})
	layer.Merge(overrides)
	if layer.Sources.Root != "" {
		abs, err := filepath.Abs(layer.Sources.Root)
		if err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
		layer.Sources.Root = abs
	}

	cfg, err := config.NewLoader(slog.Default()).Load(layer)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
