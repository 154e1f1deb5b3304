package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/employee-directory/internal/config"
	"github.com/employee-directory/internal/db"
	"github.com/employee-directory/internal/messages"
	"github.com/employee-directory/internal/repository"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// app - зависимости, общие для всех команд; БД открывается по требованию
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *messages.Catalog
	db      *gorm.DB
	store   repository.Store
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orgdir",
		Short:         "Employee directory: filtered queries, subordination trees and data management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newSeedCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newTreeCmd(a))
	cmd.AddCommand(newCreateCmd(a))
	cmd.AddCommand(newUpdateCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newPositionsCmd(a))
	return cmd
}

// Execute запускает CLI; ошибки сервиса выводятся текстом из каталога сообщений
func Execute() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		if a.catalog != nil {
			fmt.Fprintln(os.Stderr, a.catalog.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		a.close()
		os.Exit(1)
	}
}

func (a *app) init() error {
	a.cfg = config.Load()

	// stdout занят выводом команд, логи идут в stderr
	a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: a.cfg.App.LogLevel,
	}))
	slog.SetDefault(a.logger)

	catalog, err := messages.Load(a.cfg.App.Language)
	if err != nil {
		a.logger.Warn("unknown language, falling back to en", slog.String("language", a.cfg.App.Language))
		if catalog, err = messages.Load("en"); err != nil {
			return err
		}
	}
	a.catalog = catalog
	return nil
}

// open подключается к БД и применяет миграции
func (a *app) open(ctx context.Context) (repository.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	gdb, err := db.Connect(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	a.db = gdb

	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}

	a.logger.DebugContext(ctx, "database ready", slog.String("driver", a.cfg.Database.Driver))
	a.store = repository.NewStore(gdb)
	return a.store, nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	a.db = nil
	return sqlDB.Close()
}
