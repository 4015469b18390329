package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	assert.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestValidateDirRejectsMissingGooseHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250810090000_thing.sql"), []byte("CREATE TABLE t (id INT);"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Sales Index!")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "_add_sales_index.sql")
	assert.NoError(t, ValidateDir(dir))
}
