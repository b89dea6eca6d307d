package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/logging"
	"github.com/tirecycle/feasibility/internal/server"
	"github.com/tirecycle/feasibility/internal/store"
)

// service bundles the settings, logger, engine and store of the store-backed commands.
type service struct {
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.Engine
	store    store.Store
}

func (svc *service) Close() {
	if svc.store != nil {
		if err := svc.store.Close(); err != nil {
			svc.logger.Warn("closing store", zap.Error(err))
		}
	}
	_ = svc.logger.Sync()
}

// openService loads the service settings. An explicit --log-level or --assumptions flag
// wins over the settings file.
func openService(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (*service, error) {
	settings, err := config.LoadSettings(opts.settingsFile)
	if err != nil {
		return nil, err
	}

	level := settings.Logging.Level
	if cmd.Flags().Changed("log-level") {
		level = opts.logLevel
	}
	logger, err := logging.New(level, settings.Logging.Development)
	if err != nil {
		return nil, err
	}

	assumptionsFile := settings.AssumptionsFile
	if opts.assumptionsFile != "" {
		assumptionsFile = opts.assumptionsFile
	}
	assumptions := domain.DefaultAssumptions()
	if assumptionsFile != "" {
		if assumptions, err = config.NewInputParser().LoadAssumptions(assumptionsFile); err != nil {
			return nil, err
		}
	}
	engine := calculation.NewEngine(assumptions)
	engine.SetLogger(logger.Sugar())

	st, err := store.Open(ctx, settings.Database)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", zap.String("driver", settings.Database.Driver))

	return &service{settings: settings, logger: logger, engine: engine, store: st}, nil
}

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculation and study API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := openService(ctx, cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			return server.New(svc.engine, svc.store, svc.logger).ListenAndServe(ctx, svc.settings.HTTP)
		},
	}
}
