package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	pc, err := PoolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "pan", Password: "p@ss:word", DBName: "panaderia", SSLMode: "disable",
		MaxConns: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "panaderia", pc.ConnConfig.Database)
	assert.Equal(t, int32(7), pc.MaxConns)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := PoolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@remote:6543/otra?sslmode=disable",
		Host:        "ignorado", Port: 5432,
	})
	require.NoError(t, err)
	assert.Equal(t, "remote", pc.ConnConfig.Host)
	assert.Equal(t, "otra", pc.ConnConfig.Database)
	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
