package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"GRPC_PORT", "STORAGE_DRIVER", "STORAGE_KEY", "NATS_URL", "REPORTS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "50051", cfg.Server.GRPCPort)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "ledgerly", cfg.Storage.Key)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Reports.Enabled)
	assert.Equal(t, "@daily", cfg.Reports.Daily)
	assert.Empty(t, cfg.NATS.URL)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REPORTS_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg := FromEnv()
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.False(t, cfg.Reports.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "memory", mutate: func(*Config) {}},
		{name: "postgres", mutate: func(c *Config) { c.Storage.Driver = StorageDriverPostgres }},
		{name: "mongo", mutate: func(c *Config) { c.Storage.Driver = StorageDriverMongo }},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "sqlite" },
			wantErr: `unknown STORAGE_DRIVER "sqlite"`,
		},
		{
			name: "postgres without database",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageDriverPostgres
				c.Database.DBName = ""
			},
			wantErr: "DB_HOST and DB_NAME",
		},
		{
			name: "mongo without collection",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageDriverMongo
				c.Mongo.Collection = ""
			},
			wantErr: "MONGO_COLLECTION",
		},
		{name: "blank key", mutate: func(c *Config) { c.Storage.Key = " " }, wantErr: "STORAGE_KEY"},
		{
			name: "nats without sales subject",
			mutate: func(c *Config) {
				c.NATS.URL = "nats://localhost:4222"
				c.NATS.SalesSubject = ""
			},
			wantErr: "NATS_SALES_SUBJECT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{GRPCPort: "50051"},
				Storage:  StorageConfig{Driver: StorageDriverMemory, Key: "ledgerly"},
				Database: DatabaseConfig{Host: "localhost", DBName: "ledgerly"},
				Mongo:    MongoConfig{URI: "mongodb://localhost", Database: "ledgerly", Collection: "snapshots"},
				NATS:     NATSConfig{SalesSubject: "sales.recorded"},
			}
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

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_KEY=from-file\n"), 0o600))
	t.Setenv("STORAGE_KEY", "")
	os.Unsetenv("STORAGE_KEY")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Storage.Key)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
