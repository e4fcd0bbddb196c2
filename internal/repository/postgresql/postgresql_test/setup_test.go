package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/database"
	"github.com/dopust-hr/leave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps the database used by repository tests
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies migrations.
// Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	require.NoError(t, database.MigrateUp(dsn))

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))

	t.Cleanup(func() {
		_ = setup.TruncateAllTables(context.Background())
		setup.Close()
	})

	return setup
}

// TruncateAllTables removes all rows except seeded reference data
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"leaves",
		"requests",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database pool
func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

func createTestUser(t *testing.T, db *database.DB, email string, userType user.Type) user.User {
	t.Helper()

	repo := postgresql.NewUserRepository(db)
	created, err := repo.Create(context.Background(), user.User{
		FirstName:    "Test",
		LastName:     email,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Type:         userType,
	})
	require.NoError(t, err)
	return created
}
