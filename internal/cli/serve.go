package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/sheetstore/internal/api"
	"github.com/roach88/sheetstore/internal/batch"
	"github.com/roach88/sheetstore/internal/config"
	"github.com/roach88/sheetstore/internal/logging"
	"github.com/roach88/sheetstore/internal/server"
	"github.com/roach88/sheetstore/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
	Addr       string
	Database   string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ingestion HTTP server",
		Long: `Start the sheetstore HTTP server.

The server opens a SQLite database (creating it if it doesn't exist)
and serves the upload and retrieval endpoints until interrupted.

Example:
  sheetstore serve --db ./sheetstore.db --addr :8080
  sheetstore serve --config /etc/sheetstore.yaml --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	logging.Init(cfg.Debug || opts.Verbose, cfg.HumanLogs)
	log := logging.L()

	log.Info().Str("path", cfg.Database).Int("pool_size", cfg.PoolSize).Msg("opening database")
	st, err := store.Open(cfg.Database, store.Options{MaxConns: cfg.PoolSize})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing database")
		}
	}()

	svc := batch.NewService(st, cfg.ChunkSize, logging.WithComponent("batch"))
	handler := api.New(svc, st, cfg.MaxBodyBytes, logging.WithComponent("api"))
	srv := server.New(cfg.Addr, handler.Routes(), cfg.ShutdownTimeout.Std(), logging.WithComponent("server"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return WrapExitError(ExitFailure, "server failed", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
