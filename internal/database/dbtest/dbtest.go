// Package dbtest opens throwaway sqlite databases with the production schema for tests.
package dbtest

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/GoArmGo/ShelterApp/internal/database/client"
	"github.com/GoArmGo/ShelterApp/internal/database/migrations"
)

// DiscardLogger drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SQLiteDSN returns a plain DSN for a fresh file under t.TempDir, as an operator would write it.
func SQLiteDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "shelter.db")
}

// NewSQLite opens a migrated database that is closed when the test ends.
func NewSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := client.SQLiteDSN(SQLiteDSN(t))
	db, err := sqlx.Connect("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Apply(db.DB, "sqlite", dsn, DiscardLogger()))
	return db
}
