package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bakeryhq/orderdesk/internal/config"
	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/repository"
	"github.com/bakeryhq/orderdesk/internal/service"
	"github.com/bakeryhq/orderdesk/pkg/logger"
)

type options struct {
	driver   string
	path     string
	dsn      string
	seedFile string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "orderctl",
		Short:         "Inspect and export the bakery order book",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.applyDefaults(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.driver, "store", "", "store driver: sqlite, postgres or memory (default from STORE_DRIVER)")
	flags.StringVar(&opts.path, "store-path", "", "sqlite database file (default from STORE_PATH)")
	flags.StringVar(&opts.dsn, "dsn", "", "postgres connection string (default from DATABASE_DSN)")
	flags.StringVar(&opts.seedFile, "seed", "", "YAML seed catalog (default from SEED_FILE)")
	flags.StringVar(&opts.logLevel, "log-level", "error", "log level")

	root.AddCommand(newExportCmd(opts), newSummaryCmd(opts))
	return root
}

// applyDefaults fills unset flags from the store settings the server reads,
// then validates the result. Server-only settings are not consulted.
func (o *options) applyDefaults(cmd *cobra.Command) error {
	store, err := config.LoadStore()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("store") {
		o.driver = store.Driver
	}
	if !cmd.Flags().Changed("store-path") {
		o.path = store.Path
	}
	if !cmd.Flags().Changed("dsn") {
		o.dsn = store.DSN
	}
	if !cmd.Flags().Changed("seed") {
		o.seedFile = store.SeedFile
	}

	return config.StoreConfig{Driver: o.driver, Path: o.path, DSN: o.dsn, SeedFile: o.seedFile}.Validate()
}

// desk is the read-only service graph the commands work against
type desk struct {
	kv         repository.KV
	orders     *service.OrderService
	production *service.ProductionService
}

func (o *options) open(ctx context.Context, log *slog.Logger) (*desk, error) {
	seed, err := repository.LoadSeedFile(o.seedFile)
	if err != nil {
		return nil, err
	}
	kv, err := repository.Open(ctx, repository.Options{Driver: o.driver, Path: o.path, DSN: o.dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	repo := repository.New(kv, seed)

	products, err := service.NewProductService(ctx, repo)
	if err != nil {
		kv.Close()
		return nil, err
	}
	clients, err := service.NewClientService(ctx, repo)
	if err != nil {
		kv.Close()
		return nil, err
	}
	orders, err := service.NewOrderService(ctx, repo, products, clients, nil, log)
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &desk{
		kv:         kv,
		orders:     orders,
		production: service.NewProductionService(orders, products, clients),
	}, nil
}

func (o *options) logger() *slog.Logger {
	return logger.NewWithWriter(os.Stderr, o.logLevel)
}

// writeArtifact writes to dir/filename, or to w when dir is "-". Only the
// last element of the artifact name is used, so the file stays inside dir.
func writeArtifact(w io.Writer, dir string, a export.Artifact) (string, error) {
	if dir == "-" {
		_, err := w.Write(a.Body)
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
