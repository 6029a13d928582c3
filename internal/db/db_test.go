package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/pkg/config"
)

func TestNewDatabaseConfig(t *testing.T) {
	cfg := &config.Config{Repositories: config.RepositoriesConfig{Postgres: config.PostgresConfig{
		Host:     "db.local",
		Port:     "5454",
		DB:       "llm_time_manager",
		Username: "postgres",
		Password: "p@ss word",
		SSLMode:  "disable",
	}}}

	dbCfg, err := NewDatabaseConfig(cfg, zap.NewNop())
	require.NoError(t, err)

	u, err := url.Parse(dbCfg.ConnectionURL)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "db.local:5454", u.Host)
	assert.Equal(t, "/llm_time_manager", u.Path)
	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss word", pass)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "UTC", u.Query().Get("timezone"))
}

func TestNewDatabaseConfigRequiresAHost(t *testing.T) {
	_, err := NewDatabaseConfig(&config.Config{}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewDatabaseConfig(nil, zap.NewNop())
	assert.Error(t, err)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		"000001_create_goals.down.sql",
		"000001_create_goals.up.sql",
		"000002_create_capture_schedules.down.sql",
		"000002_create_capture_schedules.up.sql",
	}, names)
}

func TestNewMigrateRejectsForeignSchemes(t *testing.T) {
	_, err := newMigrate("mysql://root@localhost/db")
	assert.ErrorContains(t, err, "invalid database URL scheme")
}
