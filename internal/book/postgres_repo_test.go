package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed ids are rejected before any query is issued, so no database
// pool is needed.
func TestPostgresRepo_NonUUIDIDsAreNotFound(t *testing.T) {
	repo := NewPostgresRepo(nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, "ghost", Patch{})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.SoftDelete(ctx, "ghost"), ErrNotFound)

	exists, err := repo.GenreExists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}
