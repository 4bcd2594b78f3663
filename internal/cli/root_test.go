package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"commerce/internal/config"
	"commerce/internal/database"
	"commerce/internal/models"
	"commerce/internal/seed"
	"commerce/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points the configuration at a throwaway database file
func sqliteEnv(t *testing.T) string {
	t.Helper()
	utils.SetOutput(io.Discard)
	dsn := filepath.Join(t.TempDir(), "commerce.db")
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DB_DSN", dsn)
	t.Setenv("LOG_LEVEL", "error")
	return dsn
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "commerce", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "seed"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configDir := cmd.PersistentFlags().Lookup("config-dir")
	require.NotNil(t, configDir)
	assert.Equal(t, "", configDir.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestSeedCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	seedCmd, _, err := cmd.Find([]string{"seed"})
	require.NoError(t, err)

	listings := seedCmd.Flags().Lookup("listings")
	require.NotNil(t, listings)
	assert.Equal(t, "20", listings.DefValue)

	for _, name := range []string{"users", "bids", "closed", "seed"} {
		require.NotNil(t, seedCmd.Flags().Lookup(name), name)
	}
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	migrate := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, migrate)
	assert.Equal(t, "true", migrate.DefValue)
}

func TestInvalidConfiguration(t *testing.T) {
	sqliteEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestMigrateCommand(t *testing.T) {
	dsn := sqliteEnv(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date (sqlite)")

	db, err := database.Open(&config.Config{DBDriver: config.DriverSQLite, DBDSN: dsn})
	require.NoError(t, err)
	defer database.Close(db)

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestSeedCommand(t *testing.T) {
	dsn := sqliteEnv(t)

	out, err := execute(t, "seed", "--users", "2", "--listings", "3", "--bids", "2", "--closed", "1", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 users")
	assert.Contains(t, out, "3 listings")

	db, err := database.Open(&config.Config{DBDriver: config.DriverSQLite, DBDSN: dsn})
	require.NoError(t, err)
	defer database.Close(db)

	var listings, closed, categories int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&listings).Error)
	require.NoError(t, db.Model(&models.Listing{}).Where("active = ?", false).Count(&closed).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.EqualValues(t, 3, listings)
	assert.EqualValues(t, 1, closed)
	assert.EqualValues(t, len(seed.DefaultCategories), categories)
}
