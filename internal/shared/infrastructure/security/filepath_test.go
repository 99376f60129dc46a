package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()

	t.Run("cleans relative segments", func(t *testing.T) {
		got, err := ValidateFilePath(filepath.Join(dir, "a", "..", "case.json"))
		require.NoError(t, err)
		assert.Equal(t, "case.json", filepath.Base(got))
		assert.True(t, filepath.IsAbs(got))
	})

	for _, bad := range []string{"", "case.json; rm -rf /", "$(whoami).json", "a|b"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := ValidateFilePath(bad)
			assert.Error(t, err)
		})
	}
}

func TestSafeOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	f, err := SafeOpen(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = SafeOpen(dir)
	assert.ErrorContains(t, err, "not a regular file")

	_, err = SafeOpen(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
