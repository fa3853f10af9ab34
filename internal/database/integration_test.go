package database_test

import (
	"context"
	"testing"

	"github.com/localnerve/franchisedb/internal/database"
	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/repositories"
	"github.com/localnerve/franchisedb/internal/services"
	"github.com/localnerve/franchisedb/internal/testhelpers"
	"github.com/localnerve/franchisedb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithRealDatabases runs the service layer against real MariaDB and
// PostgreSQL containers
func TestWithRealDatabases(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, dbType := range []string{"postgres", "mariadb"} {
		t.Run(dbType, func(t *testing.T) {
			containers, err := testhelpers.CreateDBTestContainer(t, dbType)
			require.NoError(t, err)
			defer containers.Terminate(t)

			db, err := database.Connect(containers.Config)
			require.NoError(t, err)
			defer database.Close(db)

			require.NoError(t, database.AutoMigrate(db))
			require.NoError(t, database.Ping(db))

			ctx := context.Background()
			franchises := services.NewFranchiseService(db)
			branches := services.NewBranchService(db)
			products := services.NewProductService(db)

			franchise, err := franchises.Create(ctx, " Integration ")
			require.NoError(t, err)
			assert.Equal(t, "Integration", franchise.Name)

			branch, err := branches.Create(ctx, "Centro", franchise.ID)
			require.NoError(t, err)

			// names compare exactly, whatever the store's default collation
			lower, err := franchises.Create(ctx, "integration")
			require.NoError(t, err)
			_, err = franchises.Create(ctx, "Integration")
			assert.ErrorIs(t, err, types.ErrConflict)
			_, err = branches.Create(ctx, "centro", franchise.ID)
			require.NoError(t, err)
			upper, err := repositories.NewFranchiseRepository(db).Create(ctx, "INTEGRATION")
			require.NoError(t, err)

			a, err := products.Create(ctx, "A", 100, branch.ID)
			require.NoError(t, err)
			c, err := products.Create(ctx, "C", 100, branch.ID)
			require.NoError(t, err)
			_, err = products.Create(ctx, "D", 50, branch.ID)
			require.NoError(t, err)

			report, err := franchises.StockReport(ctx, franchise.ID)
			require.NoError(t, err)
			require.Len(t, report, 2)
			assert.Equal(t, a.ID, report[0].ProductID)
			assert.Equal(t, c.ID, report[1].ProductID)

			// the unique index rejects what the service check would have caught
			_, err = repositories.NewProductRepository(db).Create(ctx, "A", 1, branch.ID)
			assert.ErrorIs(t, err, types.ErrConflict)

			_, err = products.UpdateStock(ctx, a.ID, -1)
			assert.ErrorIs(t, err, types.ErrValidation)

			deleted, err := franchises.Delete(ctx, franchise.ID)
			require.NoError(t, err)
			assert.True(t, deleted)
			assert.Zero(t, testhelpers.CountRows(t, db, &models.Branch{}))
			assert.Equal(t, int64(2), testhelpers.CountRows(t, db, &models.Franchise{}))

			// AutoMigrate is repeatable once the collation is in place
			require.NoError(t, database.AutoMigrate(db))
			for _, id := range []uint64{lower.ID, upper.ID} {
				deleted, err = franchises.Delete(ctx, id)
				require.NoError(t, err)
				assert.True(t, deleted)
			}
			assert.Zero(t, testhelpers.CountRows(t, db, &models.Product{}))

			require.NoError(t, database.Seed(db))
			require.NoError(t, database.Seed(db))
			assert.Equal(t, int64(1), testhelpers.CountRows(t, db, &models.Franchise{}))
			assert.Equal(t, int64(3), testhelpers.CountRows(t, db, &models.Product{}))
		})
	}
}
