// Package s3 stores tables in Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("catalogs/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	if err != nil { ... }
//	t, err := celltable.ReadTable(ctx, store, "stars.txt.gz")
//
// Reads are ranged GET requests, streaming writes go through the multipart
// upload manager and Put sends a single request with a CRC32C checksum.
package s3
