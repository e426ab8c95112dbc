package dirart

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "out.d64")

	require.Nil(t, writeFileAtomic(file, []byte("first"), 0644))
	require.Nil(t, writeFileAtomic(file, []byte("second"), 0644))

	b, err := ioutil.ReadFile(file)
	require.Nil(t, err)
	assert.Equal(t, "second", string(b))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(file)
		require.Nil(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
	}

	files, err := ioutil.ReadDir(dir)
	require.Nil(t, err)
	assert.Len(t, files, 1, "temporary file left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := writeFileAtomic(filepath.Join(tempDir(t), "missing", "out.d64"), nil, 0644)
	assert.NotNil(t, err)
}
