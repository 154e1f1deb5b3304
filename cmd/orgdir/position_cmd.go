package main

import (
	"github.com/employee-directory/internal/domain"
	"github.com/employee-directory/internal/dto"
	"github.com/employee-directory/internal/messages"
	"github.com/employee-directory/internal/render"
	"github.com/employee-directory/internal/service"
	"github.com/spf13/cobra"
)

func newPositionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Inspect and extend the positions catalog",
	}
	cmd.AddCommand(newPositionsListCmd(a))
	cmd.AddCommand(newPositionsCreateCmd(a))
	return cmd
}

func newPositionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List positions ordered by level",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			positions, err := service.NewPositionService(store, a.logger).List(cmd.Context())
			if err != nil {
				return err
			}
			return render.Positions(cmd.OutOrStdout(), a.catalog.T(messages.PositionsTitle, nil), a.catalog.PositionHeaders(), positions)
		},
	}
}

func newPositionsCreateCmd(a *app) *cobra.Command {
	var req dto.CreatePositionRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a position with a hierarchy level 1..5",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			pos, err := service.NewPositionService(store, a.logger).Create(cmd.Context(), &req)
			if err != nil {
				return err
			}
			return render.Positions(cmd.OutOrStdout(), a.catalog.T(messages.PositionsTitle, nil), a.catalog.PositionHeaders(),
				[]domain.Position{*pos})
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "position title")
	cmd.Flags().IntVar(&req.Level, "level", 0, "hierarchy level, 1 is the top")
	return cmd
}
