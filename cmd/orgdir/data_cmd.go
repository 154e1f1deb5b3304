package main

import (
	"fmt"
	"time"

	"github.com/employee-directory/internal/messages"
	"github.com/employee-directory/internal/seed"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.open(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(messages.Migrated, nil))
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		rows    int
		reset   bool
		seedVal int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate synthetic employees across the five hierarchy levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("rows") {
				rows = a.cfg.App.InitialDataCount
			}
			if !cmd.Flags().Changed("seed") {
				seedVal = time.Now().UnixNano()
			}

			gen := seed.NewGenerator(store, a.cfg.App.Language, uint64(seedVal), a.logger)
			created, err := gen.Seed(cmd.Context(), rows, reset)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(messages.Seeded, map[string]any{"count": created}))
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "number of employees to generate (default INITIAL_DATA_COUNT)")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing data and recreate default positions first")
	cmd.Flags().Int64Var(&seedVal, "seed", 0, "random seed for reproducible data")
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all employees and positions, then recreate default positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			gen := seed.NewGenerator(store, a.cfg.App.Language, 0, a.logger)
			if err := gen.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(messages.Reset, nil))
			return nil
		},
	}
}
