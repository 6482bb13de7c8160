// Package compress provides the stream compressions that table files may be
// stored with: gzip and zstd (klauspost/compress) and lz4 frames
// (pierrec/lz4).
package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a stream compression.
type Codec uint8

const (
	// None stores data uncompressed.
	None Codec = iota
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is Zstandard, good ratio at reasonable speed.
	Zstd
	// LZ4 is the LZ4 frame format, fastest to decode.
	LZ4
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ErrUnknownCodec is returned for an out-of-range Codec value.
var ErrUnknownCodec = errors.New("compress: unknown codec")

// String returns the codec name.
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// Extension returns the file name suffix of the codec, including the dot.
func (c Codec) Extension() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

// FromName returns the codec implied by the suffix of name.
func FromName(name string) Codec {
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// TrimName strips a compression suffix from name, if any.
func TrimName(name string) string {
	if FromName(name) == None {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// Detect peeks at the first bytes of br and reports the codec whose magic
// number they carry. Nothing is consumed.
func Detect(br *bufio.Reader) (Codec, error) {
	head, err := br.Peek(len(magicZstd))
	if err != nil && !errors.Is(err, io.EOF) {
		return None, err
	}
	switch {
	case bytes.HasPrefix(head, magicZstd):
		return Zstd, nil
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4, nil
	case bytes.HasPrefix(head, magicGzip):
		return Gzip, nil
	default:
		return None, nil
	}
}

// NewReader wraps r with a decompressor for c. Closing the result does not
// close r.
func NewReader(r io.Reader, c Codec) (io.ReadCloser, error) {
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("compress: gzip: %w", err)
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}
}

// NewAutoReader detects the compression of r from its magic number and
// returns a decompressing reader.
func NewAutoReader(r io.Reader) (io.ReadCloser, Codec, error) {
	br := bufio.NewReader(r)
	c, err := Detect(br)
	if err != nil {
		return nil, None, err
	}
	rc, err := NewReader(br, c)
	if err != nil {
		return nil, None, err
	}
	return rc, c, nil
}

// NewWriter wraps w with a compressor for c. Close flushes the compressed
// stream but does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, uint8(c))
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
