package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stevensfit/fitness-api/internal/config"
)

func TestOpenMemoryBackend(t *testing.T) {
	ctx := context.Background()
	repos, closeFn, err := Open(ctx, config.DatabaseConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	services := repos.Services(bcrypt.MinCost)
	id, err := services.Users.CreateUser(ctx, "student1", "password1", "student1@stevens.edu")
	require.NoError(t, err)

	profile, err := services.Users.GetUserByUsername(ctx, "student1")
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID.Hex())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), config.DatabaseConfig{Backend: "sqlite"})
	assert.ErrorContains(t, err, `unknown database backend: "sqlite"`)
}
