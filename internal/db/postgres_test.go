package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_notifications.sql": {Data: []byte("SELECT 1")},
		"0001_init.sql":          {Data: []byte("SELECT 1")},
		"README.md":              {Data: []byte("docs")},
		"archive/0000_old.sql":   {Data: []byte("SELECT 1")},
	}

	names, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_notifications.sql"}, names)
}
