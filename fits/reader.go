package fits

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// HDU is one header and data unit of a FITS file.
type HDU struct {
	Header Header
	Data   []byte // without block padding
}

// Name returns the EXTNAME of the HDU, or "PRIMARY" for the primary HDU.
func (h HDU) Name() string {
	if name, ok := h.Header.String("EXTNAME"); ok {
		return name
	}
	if _, ok := h.Header.Get("SIMPLE"); ok {
		return "PRIMARY"
	}
	return ""
}

// ReadHDUs reads all HDUs from r.
func ReadHDUs(r io.Reader) ([]HDU, error) {
	var hdus []HDU
	block := make([]byte, blockSize)
	for {
		header, err := readHeader(r, block)
		if errors.Is(err, errEndOfFile) {
			if len(hdus) == 0 {
				return nil, fmt.Errorf("%w: empty input", ErrMalformed)
			}
			return hdus, nil
		}
		if err != nil {
			return nil, err
		}

		size, err := dataSize(header)
		if err != nil {
			return nil, err
		}
		data := make([]byte, padded(size))
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("%w: data of HDU %d: %w", ErrMalformed, len(hdus), err)
		}
		hdus = append(hdus, HDU{Header: header, Data: data[:size]})
	}
}

var errEndOfFile = errors.New("fits: end of file")

// readHeader reads header blocks up to the END card. errEndOfFile is
// returned when r is exhausted before the first block.
func readHeader(r io.Reader, block []byte) (Header, error) {
	var h Header
	for first := true; ; first = false {
		if _, err := io.ReadFull(r, block); err != nil {
			if first && err == io.EOF { //nolint:errorlint // io.ReadFull returns io.EOF unwrapped
				return nil, errEndOfFile
			}
			return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
		}
		for off := 0; off < blockSize; off += cardSize {
			c := parseCard(string(block[off : off+cardSize]))
			if c.Key == "END" {
				return h, nil
			}
			if first && off == 0 && c.Key != "SIMPLE" && c.Key != "XTENSION" {
				return nil, fmt.Errorf("%w: unexpected first keyword %q", ErrMalformed, c.Key)
			}
			h = append(h, c)
		}
	}
}

// dataSize returns the number of data bytes declared by the header.
func dataSize(h Header) (int, error) {
	bitpix, ok := h.Int("BITPIX")
	if !ok {
		return 0, fmt.Errorf("%w: missing BITPIX", ErrMalformed)
	}
	naxis, ok := h.Int("NAXIS")
	if !ok {
		return 0, fmt.Errorf("%w: missing NAXIS", ErrMalformed)
	}
	if naxis == 0 {
		return 0, nil
	}

	n := int64(1)
	for i := int64(1); i <= naxis; i++ {
		v, ok := h.Int("NAXIS" + strconv.FormatInt(i, 10))
		if !ok || v < 0 {
			return 0, fmt.Errorf("%w: bad NAXIS%d", ErrMalformed, i)
		}
		n *= v
	}
	pcount, _ := h.Int("PCOUNT")
	gcount, ok := h.Int("GCOUNT")
	if !ok {
		gcount = 1
	}
	if bitpix < 0 {
		bitpix = -bitpix
	}
	return int(bitpix / 8 * gcount * (pcount + n)), nil
}

func padded(n int) int {
	return (n + blockSize - 1) / blockSize * blockSize
}
