package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dopust-hr/leave-backend-go/internal/config"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/logger"
	"github.com/spf13/cobra"
)

// App holds what every command needs before it runs
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:           "api",
		Short:         "Leave request management API",
		Long:          `REST API for submitting, reviewing and reporting employee leave requests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	rootCmd.AddCommand(serveCmd(app))
	rootCmd.AddCommand(migrateCmd(app))
	rootCmd.AddCommand(promoteCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger
func (a *App) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.logger = logger.Setup(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	return nil
}
