package celltable

import (
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/celltable/internal/compress"
)

// Format is a table file format.
type Format uint8

const (
	// FormatAuto selects the format by file name.
	FormatAuto Format = iota
	// FormatText is the commented column text format of package ascii.
	FormatText
	// FormatJSON is the table document of package codec.
	FormatJSON
	// FormatFITS is a FITS file written by package fits.
	FormatFITS
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatFITS:
		return "fits"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses the String form of a format.
func ParseFormat(s string) (Format, error) {
	for f := FormatAuto; f <= FormatFITS; f++ {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatOf picks the format from the extension of name after removing a
// compression suffix: .fits, .fit and .fts are FITS, .json is JSON and
// anything else is text.
func FormatOf(name string) Format {
	switch strings.ToLower(path.Ext(compress.TrimName(name))) {
	case ".fits", ".fit", ".fts":
		return FormatFITS
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}
