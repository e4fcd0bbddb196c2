package main

import (
	"fmt"

	"github.com/dopust-hr/leave-backend-go/internal/pkg/database"
	"github.com/dopust-hr/leave-backend-go/internal/repository/postgresql"
	serviceUser "github.com/dopust-hr/leave-backend-go/internal/service/user"
	"github.com/spf13/cobra"
)

// promoteCmd grants admin rights to an existing user. Registration only
// creates employees, so the first administrator is made here.
func promoteCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Make an existing user an administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := database.NewPostgreSQLDB(ctx, app.cfg.DatabaseURL())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			userService := serviceUser.NewUserService(postgresql.NewUserRepository(db))
			promoted, err := userService.PromoteByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("failed to promote %s: %w", email, err)
			}

			app.logger.Info("user promoted", "user_id", promoted.ID, "email", promoted.Email, "role", promoted.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the user to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
