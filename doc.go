// Package celltable reads and writes typed tables.
//
// A table (package table) is a sequence of rows sharing one ColumnInfo: an
// ordered list of named, typed columns with optional unit and description.
// Cells hold scalars, vectors or n-dimensional arrays of bool, int32, int64,
// float32, float64 and string values.
//
// # Formats
//
//   - text (package ascii): whitespace separated columns with a commented
//     header declaring names, types, units and descriptions
//   - FITS (package fits): binary or ASCII table extensions, write only
//   - JSON (package codec): a document of columns and rows
//
// # Quick Start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./catalogs")
//
//	t, err := celltable.ReadTable(ctx, store, "stars.txt.gz")
//	if err != nil { ... }
//	err = celltable.WriteTable(ctx, store, "stars.fits", t,
//	    celltable.WithFITSFormat(fits.FormatASCII),
//	    celltable.WithHDUName("STARS"),
//	)
//
// The format follows from the file name and .gz, .zst and .lz4 suffixes
// select compression. Any blobstore.BlobStore works, including S3 and
// MinIO (packages blobstore/s3 and blobstore/minio).
package celltable
