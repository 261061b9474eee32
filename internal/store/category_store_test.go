package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todocal/internal/model"
	"github.com/nhle/todocal/tests/testutil"
)

func TestCategoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).Categories()

	work, err := model.CreateCategory(model.CategoryInput{Name: "Work", Color: "#ff0000"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, work)
	require.NoError(t, err)

	home, err := repo.Create(ctx, model.Category{Name: "Home"})
	require.NoError(t, err)
	assert.NotEmpty(t, home.ID)
	assert.Equal(t, model.DefaultCategoryColor, home.Color)

	byID, err := repo.FindByID(ctx, work.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "#ff0000", byID.Color)

	byName, err := repo.FindByName(ctx, "Home")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, home.ID, byName.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Home", all[0].Name)
	assert.Equal(t, "Work", all[1].Name)

	require.NoError(t, repo.Delete(ctx, work.ID))
	gone, err := repo.FindByID(ctx, work.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCategoryStore_Missing(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).Categories()

	got, err := repo.FindByName(ctx, "nothing")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, repo.Delete(ctx, "nothing"), model.ErrNotFound)
}

func TestCategoryStore_DuplicateNameIsStorageError(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewTestStore(t).Categories()

	_, err := repo.Create(ctx, model.Category{Name: "Work"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Category{Name: "Work"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStorage)
}
