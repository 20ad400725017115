package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mardecortez-api/internal/infrastructure/persistence"
	"github.com/jhoicas/mardecortez-api/pkg/config"
	"github.com/jhoicas/mardecortez-api/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	repos, err := persistence.Open(context.Background(), config.DBConfig{Driver: config.DriverMemory}, logger.Nop())
	require.NoError(t, err)
	defer repos.Close()

	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Orders)
	assert.NotNil(t, repos.Tx)

	n, err := repos.Users.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_DriverInvalido(t *testing.T) {
	_, err := persistence.Open(context.Background(), config.DBConfig{Driver: "sqlite"}, logger.Nop())
	assert.Error(t, err)
}
