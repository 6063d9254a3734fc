package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/estflow/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &user.User{
		ID: "u2", Name: "Priya Sharma", Email: "priya@acme.test", Role: user.RoleEstimator,
	}))
	require.NoError(t, repo.Create(ctx, &user.User{
		ID: "u1", Name: "Alex Chen", Email: "alex@acme.test", Role: user.RoleRequestor,
	}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Ordered by name, not id.
	require.Equal(t, "Alex Chen", users[0].Name)
	require.Equal(t, user.RoleRequestor, users[0].Role)
	require.Equal(t, "Priya Sharma", users[1].Name)
	require.Equal(t, user.RoleEstimator, users[1].Role)
}
