package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khaoulaLakhdim/orders-management/internal/app"
	"github.com/khaoulaLakhdim/orders-management/internal/core/config"
	"github.com/khaoulaLakhdim/orders-management/internal/core/database"
	"github.com/khaoulaLakhdim/orders-management/internal/core/logger"
	"github.com/khaoulaLakhdim/orders-management/internal/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		target  int
	)
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Populate the orders database with demo data",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	root.PersistentFlags().IntVar(&target, "orders", 0, "order count to reach (default from config)")

	withSeeder := func(fn func(cmd *cobra.Command, s *seed.Seeder) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			if cfgPath == "" {
				cfgPath = os.Getenv("CONFIG_PATH")
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if target > 0 {
				cfg.Seed.TargetOrders = target
			}
			log, cleanup := logger.New(logger.FromConfig(cfg.Log))
			defer cleanup()

			db, err := app.OpenDB(cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()
			return fn(cmd, app.NewSeeder(cfg, app.NewRepos(db), log.With(zap.String("cmd", cmd.Name()))))
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Seed whatever is missing; a populated store is left alone",
			RunE: withSeeder(func(cmd *cobra.Command, s *seed.Seeder) error {
				res, err := s.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted users=%d clients=%d orders=%d\n", res.Users, res.Clients, res.Orders)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print row counts",
			RunE: withSeeder(func(cmd *cobra.Command, s *seed.Seeder) error {
				st, err := s.Status(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "users=%d clients=%d orders=%d seeded=%t\n", st.Users, st.Clients, st.Orders, st.IsSeeded)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all orders, clients and users",
			RunE: withSeeder(func(cmd *cobra.Command, s *seed.Seeder) error {
				return s.Clear(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "reseed",
			Short: "Clear everything and seed from scratch",
			RunE: withSeeder(func(cmd *cobra.Command, s *seed.Seeder) error {
				st, err := s.Reseed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "users=%d clients=%d orders=%d\n", st.Users, st.Clients, st.Orders)
				return nil
			}),
		},
	)
	return root
}
