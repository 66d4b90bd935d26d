package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUsersRepository(db)
	ctx := context.Background()

	created := seedUser(t, db, "henry", Roles{Customer: true})

	got, err := repo.GetByUsername(ctx, "henry")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.IsCustomer)
	assert.False(t, got.IsAdmin)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, repo.SetRoles(ctx, "henry", Roles{Admin: true}))
	got, err = repo.GetByUsername(ctx, "henry")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.False(t, got.IsCustomer, "roles are replaced, not merged")

	assert.ErrorIs(t, repo.SetRoles(ctx, "nobody", Roles{}), ErrUserNotFound)
}
