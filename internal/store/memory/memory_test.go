package memory

import (
	"context"
	"testing"

	"portfolio-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndFind(t *testing.T) {
	m := New()
	ctx := context.Background()

	id, err := m.InsertOne(ctx, "projects", map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.True(t, m.ValidID(id))

	doc, err := m.FindByID(ctx, "projects", id)
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Fields["name"])

	_, err = m.FindByID(ctx, "projects", "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestValidID(t *testing.T) {
	m := New()
	assert.False(t, m.ValidID("abc"))
	assert.False(t, m.ValidID(""))
	assert.True(t, m.ValidID("b9f1c6a2-9c3e-4e0f-8a3d-0c2a1b4d5e6f"))
}

func TestFindFirstAndAll(t *testing.T) {
	m := New()
	ctx := context.Background()

	_, err := m.FindFirst(ctx, "phones")
	assert.ErrorIs(t, err, store.ErrNotFound)

	first, err := m.InsertOne(ctx, "phones", map[string]any{"number": "1"})
	require.NoError(t, err)
	_, err = m.InsertOne(ctx, "phones", map[string]any{"number": "2"})
	require.NoError(t, err)

	doc, err := m.FindFirst(ctx, "phones")
	require.NoError(t, err)
	assert.Equal(t, first, doc.ID)

	all, err := m.FindAll(ctx, "phones")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].ID)
}

func TestUpdateReportsModifiedNotMatched(t *testing.T) {
	m := New()
	ctx := context.Background()

	id, err := m.InsertOne(ctx, "projects", map[string]any{"name": "x", "description": "d"})
	require.NoError(t, err)

	// Same value: matched but not modified.
	n, err := m.UpdateByID(ctx, "projects", id, store.Patch{Set: map[string]any{"name": "x"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = m.UpdateByID(ctx, "projects", id, store.Patch{Set: map[string]any{"name": "y"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Unset of an existing field is a modification.
	n, err = m.UpdateByID(ctx, "projects", id, store.Patch{Unset: []string{"description"}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Unset of a field already gone is not.
	n, err = m.UpdateByID(ctx, "projects", id, store.Patch{Unset: []string{"description"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = m.UpdateByID(ctx, "projects", "unknown", store.Patch{Set: map[string]any{"name": "z"}})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteTwice(t *testing.T) {
	m := New()
	ctx := context.Background()

	id, err := m.InsertOne(ctx, "phones", map[string]any{"number": "1"})
	require.NoError(t, err)

	deleted, err := m.DeleteByID(ctx, "phones", id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = m.DeleteByID(ctx, "phones", id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDocumentsDoNotAlias(t *testing.T) {
	m := New()
	ctx := context.Background()

	fields := map[string]any{"name": "x"}
	id, err := m.InsertOne(ctx, "projects", fields)
	require.NoError(t, err)

	fields["name"] = "mutated"
	doc, err := m.FindByID(ctx, "projects", id)
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Fields["name"])

	doc.Fields["name"] = "mutated again"
	doc2, err := m.FindByID(ctx, "projects", id)
	require.NoError(t, err)
	assert.Equal(t, "x", doc2.Fields["name"])
}
