package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/seek-sim/server"
	"github.com/inference-sim/seek-sim/sim"
)

var (
	configPath string // Path to the YAML server config
	listenAddr string // Overrides the config's listen address
	serveSeed  int64  // Seed for generated request sets; random when unset
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling comparison HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
				logrus.Infof("loaded server config from %s", configPath)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = listenAddr
			}

			planner, err := sim.NewPlanner(sim.DefaultRegistry(), cfg.Policy)
			if err != nil {
				return err
			}
			fixtures, err := server.NewFixtures(cfg.Fixtures)
			if err != nil {
				return err
			}
			var opts []server.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, server.WithSeed(serveSeed))
			}
			srv, err := server.New(cfg, planner, fixtures, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := srv.Run(ctx); err != nil {
				logrus.Fatalf("server exited: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML server config (defaults are used when empty)")
	cmd.Flags().StringVar(&listenAddr, "addr", server.DefaultConfig().Addr, "Listen address")
	cmd.Flags().Int64Var(&serveSeed, "seed", 0, "Seed for generated request sets (random when unset)")
	return cmd
}
