package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/construction-backoffice-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	sharedOnce sync.Once
	sharedDSN  string
	sharedErr  error
)

// startDatabase returns a DSN for a migrated database. TEST_DATABASE_URL wins
// when set; otherwise one postgres container is shared by the package.
func startDatabase(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		sharedOnce.Do(func() {
			sharedDSN = dsn
			sharedErr = database.Migrate(dsn)
		})
		require.NoError(t, sharedErr)
		return sharedDSN
	}

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	sharedOnce.Do(func() {
		ctx := context.Background()
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("backoffice_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			sharedErr = err
			return
		}
		sharedDSN, sharedErr = container.ConnectionString(ctx, "sslmode=disable")
		if sharedErr != nil {
			return
		}
		sharedErr = database.Migrate(sharedDSN)
	})
	require.NoError(t, sharedErr)
	return sharedDSN
}

// NewTestDatabase connects to the shared database and empties every table.
func NewTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.NewPostgreSQLDB(startDatabase(t))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.Exec(context.Background(),
		`TRUNCATE TABLE payrolls, office_payrolls, emergency_deductions, emergency_cash_advances, employees CASCADE`)
	require.NoError(t, err)

	return db
}
