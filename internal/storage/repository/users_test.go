package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nutriede/internal/models"
)

func TestStorage_Users(t *testing.T) {
	storage := setupTestDatabase(t)
	ctx := context.Background()

	manager := models.User{
		Username:     "gerente",
		Email:        "gerente@nutriede.com.br",
		PasswordHash: "$2a$10$hash",
		Role:         "manager",
	}

	id, err := storage.CreateUser(ctx, manager)
	require.NoError(t, err)
	assert.Positive(t, id)

	t.Run("get by email", func(t *testing.T) {
		got, err := storage.GetUserByEmail(ctx, "gerente@nutriede.com.br")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "gerente", got.Username)
		assert.Equal(t, "manager", got.Role)
		assert.Equal(t, "$2a$10$hash", got.PasswordHash)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "ninguem@nutriede.com.br")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("user without role", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, models.User{
			Username: "operador", Email: "operador@nutriede.com.br", PasswordHash: "h",
		})
		require.NoError(t, err)

		got, err := storage.GetUserByEmail(ctx, "operador@nutriede.com.br")
		require.NoError(t, err)
		assert.Empty(t, got.Role)
	})

	t.Run("exists by username or email", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			email    string
			want     bool
		}{
			{name: "same username", username: "gerente", email: "novo@x", want: true},
			{name: "same email", username: "novo", email: "gerente@nutriede.com.br", want: true},
			{name: "free", username: "novo", email: "novo@x", want: false},
		}
		for _, tt := range tests {
			got, err := storage.UserExists(ctx, tt.username, tt.email)
			require.NoError(t, err, tt.name)
			assert.Equal(t, tt.want, got, tt.name)
		}
	})

	t.Run("duplicate insert", func(t *testing.T) {
		before := countUsers(t, storage)

		_, err := storage.CreateUser(ctx, models.User{
			Username: "gerente", Email: "outro@nutriede.com.br", PasswordHash: "h",
		})
		assert.ErrorIs(t, err, ErrUserExists)

		_, err = storage.CreateUser(ctx, models.User{
			Username: "outro", Email: "gerente@nutriede.com.br", PasswordHash: "h",
		})
		assert.ErrorIs(t, err, ErrUserExists)

		assert.Equal(t, before, countUsers(t, storage))
	})
}
