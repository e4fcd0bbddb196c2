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

	appHTTP "github.com/dopust-hr/leave-backend-go/internal/handler/http"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/database"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/dopust-hr/leave-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/dopust-hr/leave-backend-go/internal/service/auth"
	serviceLeave "github.com/dopust-hr/leave-backend-go/internal/service/leave"
	serviceUser "github.com/dopust-hr/leave-backend-go/internal/service/user"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func serveCmd(app *App) *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.serve(ctx, runMigrations)
		},
	}

	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func (a *App) serve(ctx context.Context, runMigrations bool) error {
	cfg := a.cfg
	dsn := cfg.DatabaseURL()

	if runMigrations {
		if err := database.MigrateUp(dsn); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	userService := serviceUser.NewUserService(userRepo)
	leaveService := serviceLeave.NewLeaveService(leaveTypeRepo, requestRepo, leaveRepo, cfg.Leave.AnnualCap)

	authHandler := appHTTP.NewAuthHandler(authService)
	userHandler := appHTTP.NewUserHandler(userService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{FrontendURL: cfg.App.FrontendURL, Logger: a.logger},
		JWTService,
		userRepo,
		authHandler,
		userHandler,
		leaveHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
