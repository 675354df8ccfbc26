// Package cli implements the hendshake command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sobirin-dev/hendshake/internal/app"
	"github.com/sobirin-dev/hendshake/internal/config"
	"github.com/sobirin-dev/hendshake/internal/entrystore"
	"github.com/sobirin-dev/hendshake/internal/logger"
	"github.com/sobirin-dev/hendshake/internal/version"
)

type rootOptions struct {
	backend    string
	sqlitePath string
	verbose    bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hendshake",
		Short:         "Keep a list of activities",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "snapshot backend: none, memory, redis or sqlite (overrides config)")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "database file for the sqlite backend (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(serveCmd(opts))
	root.AddCommand(addCmd(opts))
	root.AddCommand(listCmd(opts))
	root.AddCommand(removeCmd(opts))
	root.AddCommand(countCmd(opts))
	root.AddCommand(categoriesCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *rootOptions) config() (*config.Config, error) {
	cfg, err := config.LoadUnvalidated()
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.sqlitePath != "" {
		cfg.SQLitePath = o.sqlitePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) logger(cfg *config.Config) logger.Logger {
	if !o.verbose {
		return logger.NewNop()
	}
	return logger.New(cfg.LogLevel, cfg.PrettyLog)
}

// openStore loads the configured snapshot. The returned func releases the backend.
func (o *rootOptions) openStore(ctx context.Context) (*entrystore.Store, func(), error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}
	log := o.logger(cfg)

	store, backend, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		backend.Close(log)
		_ = log.Sync()
	}, nil
}
