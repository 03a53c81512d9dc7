package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, WriteFileAtomic(dir, "p.peu", []byte("first")))
	b, err := os.ReadFile(filepath.Join(dir, "p.peu"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(b))

	require.NoError(t, WriteFileAtomic(dir, "p.peu", []byte("second")))
	b, err = os.ReadFile(filepath.Join(dir, "p.peu"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must be cleaned up")
}
