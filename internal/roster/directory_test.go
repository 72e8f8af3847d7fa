package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttradingco/eventbot/internal/common"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usuarios.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeRoster(t, `{"  12345678 ": "Jane Doe", "JANE@X.COM": "Jane Doe"}`)

	d := Load(path)
	assert.Equal(t, 2, d.Len())

	e, err := d.Lookup("12345678")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", e.Name)
}

func TestLoad_MissingFileFallsBackToSeed(t *testing.T) {
	d := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, len(seed), d.Len())
}

func TestLoad_MalformedFileFallsBackToSeed(t *testing.T) {
	path := writeRoster(t, `["not", "a", "map"]`)
	d := Load(path)
	assert.Equal(t, len(seed), d.Len())
}

func TestLookup_NormalizesInput(t *testing.T) {
	path := writeRoster(t, `{"jane@x.com": "Jane Doe"}`)
	d := Load(path)

	for _, in := range []string{"jane@x.com", "  JANE@X.COM  ", "Jane@x.Com"} {
		e, err := d.Lookup(in)
		require.NoError(t, err, in)
		assert.Equal(t, "Jane Doe", e.Name)
	}
}

func TestLookup_Miss(t *testing.T) {
	path := writeRoster(t, `{"jane@x.com": "Jane Doe"}`)
	d := Load(path)

	_, err := d.Lookup("john@x.com")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestLookup_ComplementaryIdentifierRoundTrip(t *testing.T) {
	path := writeRoster(t, `{"12345678": "Jane Doe", "jane@x.com": "Jane Doe"}`)
	d := Load(path)

	byCedula, err := d.Lookup("12345678")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", byCedula.Name)
	assert.Equal(t, "12345678", byCedula.Cedula)
	assert.Equal(t, "jane@x.com", byCedula.Correo)

	byCorreo, err := d.Lookup("jane@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", byCorreo.Name)
	assert.Equal(t, "12345678", byCorreo.Cedula)
	assert.Equal(t, "jane@x.com", byCorreo.Correo)
}

func TestLookup_SingleShapeLeavesOtherEmpty(t *testing.T) {
	path := writeRoster(t, `{"87654321": "Solo Cedula"}`)
	d := Load(path)

	e, err := d.Lookup("8.76 54321")
	assert.True(t, errors.Is(err, common.ErrNotFound), "separators are not stripped before map lookup")

	e, err = d.Lookup("87654321")
	require.NoError(t, err)
	assert.Equal(t, "87654321", e.Cedula)
	assert.Empty(t, e.Correo)
}

func TestIdentifierShapes(t *testing.T) {
	assert.True(t, IsCedula("1.234.567"))
	assert.True(t, IsCedula("12 34 56"))
	assert.False(t, IsCedula("12a34"))
	assert.False(t, IsCedula(""))
	assert.True(t, IsCorreo("a@b.co"))
	assert.False(t, IsCorreo("1234"))
}
