package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/gpuspecs-backend/internal/config"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	t.Parallel()

	_, err := postgres.NewPool(context.Background(), config.DatabaseConfig{DSN: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse database DSN")
}

func TestNewPool_ApplicationName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)

	var name string
	err := pool.QueryRow(context.Background(), "SELECT current_setting('application_name')").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, postgres.ApplicationName, name)
	assert.EqualValues(t, 4, pool.Config().MaxConns)
}
