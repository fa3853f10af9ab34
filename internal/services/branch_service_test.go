package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/services"
	"github.com/localnerve/franchisedb/internal/testhelpers"
	"github.com/localnerve/franchisedb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchCreate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := services.NewBranchService(db)
	ctx := context.Background()

	franchise := testhelpers.CreateTestFranchise(t, db, "F1")

	branch, err := svc.Create(ctx, " Centro ", franchise.ID)
	require.NoError(t, err)
	assert.Equal(t, "Centro", branch.Name)
	assert.Equal(t, franchise.ID, branch.FranchiseID)

	_, err = svc.Create(ctx, "", franchise.ID)
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = svc.Create(ctx, "Norte", 999)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, int64(1), testhelpers.CountRows(t, db, &models.Branch{}))
}

func TestBranchNameUniqueWithinFranchise(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := services.NewBranchService(db)
	ctx := context.Background()

	f1 := testhelpers.CreateTestFranchise(t, db, "F1")
	f2 := testhelpers.CreateTestFranchise(t, db, "F2")

	_, err := svc.Create(ctx, "Centro", f1.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Centro  ", f1.ID)
	assert.ErrorIs(t, err, types.ErrConflict)

	_, err = svc.Create(ctx, "Centro", f2.ID)
	assert.NoError(t, err)
}

func TestBranchGetByFranchise(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := services.NewBranchService(db)
	ctx := context.Background()

	franchise := testhelpers.CreateTestFranchise(t, db, "F1")

	empty, err := svc.GetByFranchise(ctx, franchise.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	testhelpers.CreateTestBranch(t, db, franchise.ID, "B1")
	testhelpers.CreateTestBranch(t, db, franchise.ID, "B2")

	branches, err := svc.GetByFranchise(ctx, franchise.ID)
	require.NoError(t, err)
	assert.Len(t, branches, 2)

	_, err = svc.GetByFranchise(ctx, 999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBranchUpdateScopedConflict(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := services.NewBranchService(db)
	ctx := context.Background()

	f1 := testhelpers.CreateTestFranchise(t, db, "F1")
	f2 := testhelpers.CreateTestFranchise(t, db, "F2")
	b1 := testhelpers.CreateTestBranch(t, db, f1.ID, "B1")
	testhelpers.CreateTestBranch(t, db, f1.ID, "B2")
	testhelpers.CreateTestBranch(t, db, f2.ID, "Elsewhere")

	_, err := svc.Update(ctx, b1.ID, "B2")
	assert.ErrorIs(t, err, types.ErrConflict)

	updated, err := svc.Update(ctx, b1.ID, "Elsewhere")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Elsewhere", updated.Name)

	updated, err = svc.Update(ctx, b1.ID, "Elsewhere")
	require.NoError(t, err)
	assert.NotNil(t, updated)

	_, err = svc.Update(ctx, b1.ID, " ")
	assert.ErrorIs(t, err, types.ErrValidation)

	missing, err := svc.Update(ctx, 999, "Name")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBranchDeleteCascades(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := services.NewBranchService(db)
	ctx := context.Background()

	franchise := testhelpers.CreateTestFranchise(t, db, "F1")
	branch := testhelpers.CreateTestBranch(t, db, franchise.ID, "B1")
	testhelpers.CreateTestProduct(t, db, branch.ID, "P1", 1)

	deleted, err := svc.Delete(ctx, branch.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Zero(t, testhelpers.CountRows(t, db, &models.Product{}))

	found, err := svc.GetByID(ctx, branch.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	deleted, err = svc.Delete(ctx, branch.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBranchBelongsTo(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := services.NewBranchService(db)
	ctx := context.Background()

	f1 := testhelpers.CreateTestFranchise(t, db, "F1")
	f2 := testhelpers.CreateTestFranchise(t, db, "F2")
	branch := testhelpers.CreateTestBranch(t, db, f1.ID, "B1")

	belongs, err := svc.BelongsTo(ctx, branch.ID, f1.ID)
	require.NoError(t, err)
	assert.True(t, belongs)

	belongs, err = svc.BelongsTo(ctx, branch.ID, f2.ID)
	require.NoError(t, err)
	assert.False(t, belongs)

	exists, err := svc.Exists(ctx, branch.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
