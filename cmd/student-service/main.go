package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/student-service/internal/config"
	"github.com/deppfellow/student-service/internal/database"
	"github.com/deppfellow/student-service/internal/handler"
	"github.com/deppfellow/student-service/internal/logger"
	"github.com/deppfellow/student-service/internal/repository"
	"github.com/deppfellow/student-service/internal/router"
	"github.com/deppfellow/student-service/internal/server"
	"github.com/deppfellow/student-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultContextTimeout = 30

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, &log, loggerService)
	stop()

	// The agent is flushed on every exit path, including startup failures.
	loggerService.Shutdown()

	if err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

// run wires the service and serves until ctx is cancelled or the listener fails.
func run(ctx context.Context, cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	if cfg.Primary.Env != "local" {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		return errors.Join(fmt.Errorf("could not create services: %w", err), srv.Shutdown(context.Background()))
	}

	srv.Job.InitHandlers(services.Student)
	if err := srv.Job.Start(); err != nil {
		return errors.Join(fmt.Errorf("failed to start job worker: %w", err), srv.Shutdown(context.Background()))
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			err = fmt.Errorf("failed to start server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("server forced to shutdown")
	}

	if err == nil {
		log.Info().Msg("server exited properly")
	}
	return err
}
