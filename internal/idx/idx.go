// Package idx reads the IDX ubyte file format used to distribute the
// MNIST digit dataset: a big-endian header (magic number, dimension
// count, then one uint32 per dimension) followed by raw uint8 payload.
package idx

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Images holds a decoded image set: Count images of Rows x Cols pixels
// each, row-major, one byte per pixel.
type Images struct {
	Count      int
	Rows, Cols int
	Pixels     []byte
}

// Labels holds a decoded label set: one byte per example.
type Labels struct {
	Count  int
	Values []byte
}

const (
	imageMagic = 0x00000803
	labelMagic = 0x00000801
)

// ReadImages decodes an IDX image file (the "-images-idx3-ubyte" files).
func ReadImages(path string) (*Images, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening idx image file %q: %w", path, err)
	}
	defer f.Close()

	var header [4]uint32
	if err := binary.Read(f, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("reading idx image header %q: %w", path, err)
	}
	if header[0] != imageMagic {
		return nil, fmt.Errorf("idx image file %q has wrong magic number %#08x", path, header[0])
	}

	count, rows, cols := int(header[1]), int(header[2]), int(header[3])
	pixels := make([]byte, count*rows*cols)
	if _, err := io.ReadFull(f, pixels); err != nil {
		return nil, fmt.Errorf("reading idx image payload %q: %w", path, err)
	}

	return &Images{Count: count, Rows: rows, Cols: cols, Pixels: pixels}, nil
}

// ReadLabels decodes an IDX label file (the "-labels-idx1-ubyte" files).
func ReadLabels(path string) (*Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening idx label file %q: %w", path, err)
	}
	defer f.Close()

	var header [2]uint32
	if err := binary.Read(f, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("reading idx label header %q: %w", path, err)
	}
	if header[0] != labelMagic {
		return nil, fmt.Errorf("idx label file %q has wrong magic number %#08x", path, header[0])
	}

	count := int(header[1])
	values := make([]byte, count)
	if _, err := io.ReadFull(f, values); err != nil {
		return nil, fmt.Errorf("reading idx label payload %q: %w", path, err)
	}

	return &Labels{Count: count, Values: values}, nil
}

// Image returns the n'th image's pixels as a subslice of Pixels (not a
// copy: writes through it modify im).
func (im *Images) Image(n int) []byte {
	size := im.Rows * im.Cols
	return im.Pixels[n*size : (n+1)*size]
}
