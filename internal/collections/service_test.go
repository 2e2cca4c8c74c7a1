package collections

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/dbtest"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	require.NoError(t, err)
	return svc
}

func TestCreateNormalizesSlug(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Title: " Eid Collection ",
		Slug:  "  Eid  Sale!! 2024 ",
		Image: "image-abc123",
	})
	require.NoError(t, err)
	assert.Equal(t, "eid-sale-2024", created.Slug)
	assert.Equal(t, "Eid Collection", created.Title)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := svc.GetBySlug(context.Background(), "EID SALE 2024")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Title: "Lawn", Slug: "lawn", Image: "img"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Title: "Lawn Again", Slug: "LAWN", Image: "img"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Equal(t, MsgDuplicateSlug, pkgerrors.As(err).Message())
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Title: "L", Slug: "!!!"})
	require.Error(t, err)
	details := validation.Details(err)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "slug")
	assert.Contains(t, details, "image")
}

func TestUpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "Winter", Slug: "winter", Image: "img"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Title: "Summer", Slug: "summer", Image: "img"})
	require.NoError(t, err)

	patch, err := ParsePatch(map[string]any{"title": "Winter Edit", "slug": "Winter Edit!"})
	require.NoError(t, err)
	updated, err := svc.Update(ctx, created.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Winter Edit", updated.Title)
	assert.Equal(t, "winter-edit", updated.Slug)
	assert.Equal(t, "img", updated.Image)

	patch, err = ParsePatch(map[string]any{"slug": "summer"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.ID, patch)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, MsgNotFound, pkgerrors.As(err).Message())

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "summer", rows[0].Slug)
}

func TestUpdateMissingCollection(t *testing.T) {
	svc := newTestService(t)
	title := "Ghost"
	_, err := svc.Update(context.Background(), uuid.New(), Patch{Title: &title})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestParsePatchRejects(t *testing.T) {
	_, err := ParsePatch(map[string]any{"slug": "@@@"})
	assert.Contains(t, validation.Details(err), "slug")

	_, err = ParsePatch(map[string]any{"products": []string{"a"}})
	assert.Equal(t, "is not editable", validation.Details(err)["products"])
}
