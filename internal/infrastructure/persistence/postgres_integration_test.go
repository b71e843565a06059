//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellaids/backend/internal/domain/catalog"
	"github.com/sellaids/backend/internal/domain/identity"
	"github.com/sellaids/backend/internal/domain/review"
	"github.com/sellaids/backend/internal/domain/setting"
	"github.com/sellaids/backend/internal/domain/shared"
	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/sellaids/backend/internal/infrastructure/migration"
	"github.com/sellaids/backend/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// newPostgresDB starts a disposable PostgreSQL container and applies the
// embedded SQL migrations, so repositories run against the real schema.
func newPostgresDB(t *testing.T) *Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("sellaids_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       "postgres",
		Host:         host,
		Port:         port.Int(),
		User:         "postgres",
		Password:     "postgres",
		DBName:       "sellaids_test",
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	migrator, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Up())

	return db
}

func TestPostgresRepositories_Integration(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()

	users := NewGormUserRepository(db.DB)
	vendors := NewGormVendorRepository(db.DB)
	products := NewGormProductRepository(db.DB)
	reviews := NewGormReviewRepository(db.DB)
	settings := NewGormSettingRepository(db.DB)

	owner, err := identity.NewUser("meera@example.com", "Meera Kapoor", "s3cretpass", identity.RoleVendor)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, owner))

	v := newTestVendor(t, "Meera Luxe", "meera@example.com")
	v.UserID = owner.ID
	require.NoError(t, vendors.Create(ctx, v))

	t.Run("vendor satisfies the user foreign key", func(t *testing.T) {
		found, err := vendors.FindByUserID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, v.ID, found.ID)
		assert.Equal(t, []string{"Bags", "Watches"}, found.Store.Categories)
	})

	t.Run("product prices keep their precision", func(t *testing.T) {
		p := newTestProduct(t, v.ID, "Classic Flap", "chanel", 2)
		p.OriginalPrice = decimal.RequireFromString("490000.00")
		require.NoError(t, products.Save(ctx, p))

		found, err := products.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("125000.50").Equal(found.Price))
		assert.True(t, decimal.RequireFromString("490000").Equal(found.OriginalPrice))
		assert.Equal(t, []string{"products/a.jpg"}, found.Images)

		counts, err := products.CountByApproval(ctx, &v.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[catalog.ApprovalPending])
	})

	t.Run("deleting a vendor cascades to products", func(t *testing.T) {
		other, err := identity.NewUser("vault@example.com", "Vault Owner", "s3cretpass", identity.RoleVendor)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, other))
		vault := newTestVendor(t, "Vintage Vault", "vault@example.com")
		vault.UserID = other.ID
		require.NoError(t, vendors.Create(ctx, vault))
		p := newTestProduct(t, vault.ID, "Speedy 30", "louis vuitton", 1)
		require.NoError(t, products.Save(ctx, p))

		require.NoError(t, db.DB.Exec("DELETE FROM vendors WHERE id = ?", vault.ID).Error)
		_, err = products.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("review search is case-insensitive", func(t *testing.T) {
		rv, err := review.NewReview(review.NewReviewInput{
			ProductID:     uuid.New(),
			ProductName:   "Birkin 25",
			CustomerName:  "Nisha",
			CustomerEmail: "Nisha@Example.com",
			Rating:        5,
			Comment:       "Lovely",
		})
		require.NoError(t, err)
		require.NoError(t, reviews.Create(ctx, rv))

		filter := shared.DefaultFilter()
		filter.Search = "BIRKIN"
		items, total, err := reviews.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "nisha@example.com", items[0].CustomerEmail)
	})

	t.Run("settings upsert on the group and key", func(t *testing.T) {
		require.NoError(t, settings.Upsert(ctx, []setting.Setting{{Group: "general", Key: "site_name", Value: "Sellaids"}}))
		require.NoError(t, settings.Upsert(ctx, []setting.Setting{{Group: "general", Key: "site_name", Value: "Sellaids India"}}))

		got, err := settings.Get(ctx, "general", "site_name")
		require.NoError(t, err)
		assert.Equal(t, "Sellaids India", got.Value)

		group, err := settings.FindByGroup(ctx, "general")
		require.NoError(t, err)
		assert.Len(t, group, 1)
	})
}

func TestMigrations_Integration(t *testing.T) {
	db := newPostgresDB(t)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	migrator, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
	assert.False(t, dirty)

	require.NoError(t, migrator.Down())
	assert.False(t, db.DB.Migrator().HasTable("vendors"))

	require.NoError(t, migrator.Up())
	assert.True(t, db.DB.Migrator().HasTable("settings"))
}
