package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-directory/internal/handler"
	"github.com/employee-directory/internal/seed"
	"github.com/employee-directory/internal/service"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var seedIfEmpty bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.open(ctx)
			if err != nil {
				return err
			}

			if seedIfEmpty {
				positions, err := store.Positions().List(ctx)
				if err != nil {
					return err
				}
				if len(positions) == 0 {
					gen := seed.NewGenerator(store, a.cfg.App.Language, uint64(time.Now().UnixNano()), a.logger)
					if _, err := gen.Seed(ctx, a.cfg.App.InitialDataCount, true); err != nil {
						return err
					}
				}
			}

			// Инициализация сервисов
			empService := service.NewEmployeeService(store, a.logger)
			posService := service.NewPositionService(store, a.logger)

			// Инициализация хендлеров
			empHandler := handler.NewEmployeeHandler(empService, a.cfg.App.QueryDefaultLimit, a.cfg.App.HierarchyDefaultLimit, a.logger)
			posHandler := handler.NewPositionHandler(posService, a.logger)

			// Настройка роутера
			router := handler.NewRouter(empHandler, posHandler, a.logger)

			server := &http.Server{
				Addr:         ":" + a.cfg.Server.Port,
				Handler:      router.Setup(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}
			return runServer(ctx, server, a.logger)
		},
	}
	cmd.Flags().BoolVar(&seedIfEmpty, "seed-if-empty", false, "generate INITIAL_DATA_COUNT employees when the directory is empty")
	return cmd
}

func runServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("server is starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			logger.Error("could not listen", slog.String("addr", server.Addr), slog.Any("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		return err
	}

	logger.Info("server stopped")
	return nil
}
