package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeShih716/go-daily-ledger/pkg/database"
)

const sampleYAML = `
server:
  mode: debug
  http_addr: ":9090"
  grpc_addr: ":9091"
  shutdown_timeout: 5s
store:
  type: sql
  auto_migrate: false
database:
  driver: mysql
  host: db.internal
  user: root
  password: secret
  dbname: payment
  conn_max_lifetime: 1h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Store.AutoMigrate)
	assert.Equal(t, database.DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	// 預設值補全
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_DATABASE_HOST", "10.0.0.5")
	t.Setenv("LEDGER_DATABASE_PORT", "6543")
	t.Setenv("LEDGER_STORE_AUTO_MIGRATE", "true")
	t.Setenv("LEDGER_SERVER_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	// 沒設定的環境變數不覆蓋
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LEDGER_STORE_TYPE", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Type)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, ":50051", cfg.Server.GRPCAddr)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid sql", func(c *Config) {}, ""},
		{"valid memory without database", func(c *Config) { c.Store.Type = StoreMemory; c.Database = database.Config{} }, ""},
		{"unknown store", func(c *Config) { c.Store.Type = "redis" }, "unsupported store type"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"bad port", func(c *Config) { c.Database.Port = 70000 }, "invalid database.port"},
		{"missing host", func(c *Config) { c.Database.Host = "" }, "database.host is required"},
		{"missing http addr", func(c *Config) { c.Server.HTTPAddr = "" }, "server.http_addr is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.SetDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
