package celltable

import (
	"errors"

	"github.com/hupe1980/celltable/blobstore"
)

var (
	// ErrUnsupportedFormat is returned for formats that cannot be read or
	// written, such as reading FITS files.
	ErrUnsupportedFormat = errors.New("celltable: unsupported format")

	// ErrNotFound is returned when the named table file does not exist.
	ErrNotFound = blobstore.ErrNotFound
)
