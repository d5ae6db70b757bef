package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreate(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Travel", true)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Travel", created.Name)
	assert.True(t, created.IsActive)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, "Travel", true)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Travel", true)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Travel", conflict.Name)

	// The uniqueness rule covers inactive categories too.
	_, err = svc.MarkInactive(ctx, first.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Travel", true)
	assert.ErrorAs(t, err, &conflict)
}

func TestCategoryCreateInvalidName(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"", "x"} {
		_, err := svc.Create(ctx, name, true)
		var invalid *ValidationError
		assert.ErrorAs(t, err, &invalid, "name %q", name)
	}
}

func TestCategoryNotFound(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()
	missing := uuid.NewString()

	var notFound *NotFoundError

	_, err := svc.GetByID(ctx, missing)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.ID)

	_, err = svc.Update(ctx, missing, "Renamed", true)
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.MarkInactive(ctx, missing)
	assert.ErrorAs(t, err, &notFound)
}

func TestCategoryGetByNameAbsentIsNil(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))

	got, err := svc.GetByName(context.Background(), "Nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryUpdateReplaces(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Travel", true)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "Business Travel", false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Business Travel", updated.Name)
	assert.False(t, updated.IsActive)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestCategoryMarkInactiveKeepsRow(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, "Travel", true)
	require.NoError(t, err)

	ok, err := svc.MarkInactive(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Travel", got.Name)
}

func TestCategoryListActive(t *testing.T) {
	svc := newCategoryService(setupTestDB(t))
	ctx := context.Background()

	travel, err := svc.Create(ctx, "Travel", true)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Meals", true)
	require.NoError(t, err)

	_, err = svc.MarkInactive(ctx, travel.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Meals", active[0].Name)
}
