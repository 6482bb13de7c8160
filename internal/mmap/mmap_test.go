package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestMapping_ReadAt(t *testing.T) {
	m, err := Open(writeFile(t, []byte("# Column: id int\n1\n")))
	require.NoError(t, err)
	defer m.Close()

	assert.EqualValues(t, 19, m.Size())
	assert.Equal(t, "# Column: id int\n1\n", string(m.Bytes()))

	buf := make([]byte, 6)
	n, err := m.ReadAt(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "Column", string(buf))

	buf = make([]byte, 10)
	n, err = m.ReadAt(buf, 17)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)

	n, err = m.ReadAt(buf, 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	_, err = m.ReadAt(buf, -1)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	require.NoError(t, m.Advise(AccessSequential))
}

func TestMapping_Empty(t *testing.T) {
	m, err := Open(writeFile(t, nil))
	require.NoError(t, err)

	assert.Zero(t, m.Size())
	assert.Empty(t, m.Bytes())
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, io.EOF, err)
	require.NoError(t, m.Close())
}

func TestMapping_Close(t *testing.T) {
	m, err := Open(writeFile(t, []byte("data")))
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
