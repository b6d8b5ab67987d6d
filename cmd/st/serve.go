package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cfstools/schedtab/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiled tables over a read-only HTTP API",
		Long:  "Compiles a snapshot of the schedule tables and serves it as JSON. POST /api/refresh rebuilds the snapshot; a serve.refresh cron expression in the config rebuilds it periodically.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Start(ctx, server.StartOpts{
				DB:      gormDB,
				Addr:    addr,
				Refresh: cfg.Serve.Refresh,
				Out:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to serve.addr from config)")
	return cmd
}
