package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points ENV_FILE at a missing file so a local .env cannot leak in,
// and unsets the variables under test. They are restored on cleanup.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"HOST", "PORT", "DB_TYPE", "DATABASE_URL", "DB_DATABASE", "DB_USER", "DB_CONNECTION_LIMIT", "CORS_ORIGINS", "SEED_DATA"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8000", cfg.ListenAddress())
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "franchises.db", cfg.DBDatabase)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.CORSOrigins)
	assert.Equal(t, "franchisedb", cfg.MetricsPrefix)
	assert.False(t, cfg.SeedData)
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("DB_DATABASE", "franchises")
	t.Setenv("DB_USER", "franchises")
	t.Setenv("DB_CONNECTION_LIMIT", "12")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SEED_DATA", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, 12, cfg.DBConnectionLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.SeedData)
}

func TestLoadFromEnvFile(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7070\nDB_DATABASE=from-file.db\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "from-file.db", cfg.DBDatabase)
}

func TestValidate(t *testing.T) {
	valid := Config{Port: "8000", DBType: "mysql", DBDatabase: "franchises", DBUser: "u", DBConnectionLimit: 1}
	assert.NoError(t, valid.Validate())

	noUser := valid
	noUser.DBUser = ""
	assert.Error(t, noUser.Validate())

	withURL := noUser
	withURL.DBDatabase = ""
	withURL.DatabaseURL = "u:p@tcp(h:3306)/d"
	assert.NoError(t, withURL.Validate())

	noPool := valid
	noPool.DBConnectionLimit = 0
	assert.Error(t, noPool.Validate())

	noPort := valid
	noPort.Port = ""
	assert.Error(t, noPort.Validate())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CONFIG_TEST_INT", "not-a-number")
	assert.Equal(t, 3, getEnvAsInt("CONFIG_TEST_INT", 3))

	t.Setenv("CONFIG_TEST_BOOL", "1")
	assert.True(t, getEnvAsBool("CONFIG_TEST_BOOL", false))

	t.Setenv("CONFIG_TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, getEnvAsList("CONFIG_TEST_LIST", []string{"x"}))
}
