package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bariqpay/bariq-cli/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpen_CreatesMissingDirectory checks that Open creates the parent
// directory of the database file when it does not exist yet.
func TestOpen_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bariq", "bariq.db")

	conn, err := db.Open(path)
	require.NoError(t, err, "Open should not return an error")

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "Database file should exist")

	assert.NoError(t, db.Close(conn), "Close should not return an error")
}

func TestClose_NilConnection(t *testing.T) {
	assert.NoError(t, db.Close(nil))
}
