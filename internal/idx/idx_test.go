package idx

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImageFile(t *testing.T, count, rows, cols int, pixels []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "images-idx3-ubyte")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	header := [4]uint32{imageMagic, uint32(count), uint32(rows), uint32(cols)}
	require.NoError(t, binary.Write(f, binary.BigEndian, &header))
	_, err = f.Write(pixels)
	require.NoError(t, err)
	return path
}

func writeLabelFile(t *testing.T, count int, values []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels-idx1-ubyte")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	header := [2]uint32{labelMagic, uint32(count)}
	require.NoError(t, binary.Write(f, binary.BigEndian, &header))
	_, err = f.Write(values)
	require.NoError(t, err)
	return path
}

func TestReadImagesRoundTrips(t *testing.T) {
	pixels := []byte{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}
	path := writeImageFile(t, 2, 2, 2, pixels)

	images, err := ReadImages(path)
	require.NoError(t, err)
	assert.Equal(t, 2, images.Count)
	assert.Equal(t, 2, images.Rows)
	assert.Equal(t, 2, images.Cols)
	assert.Equal(t, []byte{1, 2, 3, 4}, images.Image(0))
	assert.Equal(t, []byte{5, 6, 7, 8}, images.Image(1))
}

func TestReadImagesRejectsBadMagic(t *testing.T) {
	path := writeImageFile(t, 1, 1, 1, []byte{9})
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[3] = 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = ReadImages(path)
	assert.Error(t, err)
}

func TestReadLabelsRoundTrips(t *testing.T) {
	path := writeLabelFile(t, 3, []byte{7, 2, 9})

	labels, err := ReadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, 3, labels.Count)
	assert.Equal(t, []byte{7, 2, 9}, labels.Values)
}

func TestReadLabelsRejectsBadMagic(t *testing.T) {
	path := writeLabelFile(t, 1, []byte{1})
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[3] = 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = ReadLabels(path)
	assert.Error(t, err)
}
