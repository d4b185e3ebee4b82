package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cmlabs-hris/line-attendance-go/internal/pkg/database"
)

// TestDatabaseSetup wraps a connection to a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. ok is false when it is unset.
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 4})
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// testTables lists every table the repositories write to.
var testTables = []string{
	"swap_requests",
	"overtime_requests",
	"leave_requests",
	"attendances",
	"employees",
	"shift_policies",
}

// TruncateAllTables empties every table in one statement.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	stmt := "TRUNCATE TABLE " + strings.Join(testTables, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := t.DB.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to truncate test tables: %w", err)
	}
	return nil
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
