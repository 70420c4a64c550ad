package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConnString(t *testing.T) {
	cfg := &PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     "quiz",
		Password: "p@ss:word",
		DBName:   "trivia_test",
		SSLMode:  "require",
		MaxConns: "4",
	}

	u, err := url.Parse(cfg.ConnString())
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db:5433", u.Host)
	assert.Equal(t, "/trivia_test", u.Path)
	assert.Equal(t, "quiz", u.User.Username())
	password, _ := u.User.Password()
	assert.Equal(t, "p@ss:word", password)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	assert.Equal(t, "4", u.Query().Get("pool_max_conns"))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "pg.internal")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")

	pg := NewPostgresConfig()
	assert.Equal(t, "pg.internal", pg.Host)
	assert.Equal(t, "trivia", pg.DBName)

	redisCfg, err := NewRedisConfig()
	require.NoError(t, err)
	assert.Equal(t, "6380", redisCfg.Port)
	assert.Equal(t, 2, redisCfg.DB)

	t.Setenv("REDIS_DB", "two")
	_, err = NewRedisConfig()
	assert.Error(t, err)
}
