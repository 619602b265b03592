package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	version, ok := parseVersion("V1__colecciones.sql")
	assert.True(t, ok)
	assert.Equal(t, 1, version)

	version, ok = parseVersion("V12__algo.sql")
	assert.True(t, ok)
	assert.Equal(t, 12, version)

	_, ok = parseVersion("colecciones.sql")
	assert.False(t, ok)
	_, ok = parseVersion("V__sin_numero.sql")
	assert.False(t, ok)
	_, ok = parseVersion("Vx__letras.sql")
	assert.False(t, ok)
}

func TestListMigrationsSortsByVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"V10__diez.sql", "V2__dos.sql", "V1__uno.sql", "notas.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	migs, err := listMigrations(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(migs))
	for _, mig := range migs {
		names = append(names, mig.Name)
	}
	assert.Equal(t, []string{"V1__uno.sql", "V2__dos.sql", "V10__diez.sql"}, names)
}
