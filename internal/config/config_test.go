package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, DriverSQLite, cfg.DBDriver)
	require.Equal(t, "commerce.db", cfg.DBDSN)
	require.Equal(t, 5, cfg.BidRetryAttempts)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DB_DSN", "host=localhost dbname=commerce")
	t.Setenv("APP_ENV", "production")
	t.Setenv("BID_RETRY_ATTEMPTS", "3")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, DriverPostgres, cfg.DBDriver)
	require.Equal(t, "host=localhost dbname=commerce", cfg.DBDSN)
	require.Equal(t, 3, cfg.BidRetryAttempts)
	require.True(t, cfg.IsProduction())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := []byte("PORT: \"7070\"\nLOG_LEVEL: debug\nDB_DSN: file.db\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "file.db", cfg.DBDSN)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Port: "8080", DBDriver: "sqlite", DBDSN: "x.db", BidRetryAttempts: 1}},
		{name: "missing_port", cfg: Config{DBDriver: "sqlite", DBDSN: "x.db", BidRetryAttempts: 1}, wantErr: true},
		{name: "unknown_driver", cfg: Config{Port: "8080", DBDriver: "mysql", DBDSN: "x", BidRetryAttempts: 1}, wantErr: true},
		{name: "missing_dsn", cfg: Config{Port: "8080", DBDriver: "sqlite", BidRetryAttempts: 1}, wantErr: true},
		{name: "zero_retries", cfg: Config{Port: "8080", DBDriver: "sqlite", DBDSN: "x.db"}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
