// Package minio stores tables in MinIO and other S3-compatible servers
// (Ceph, Garage, SeaweedFS) through the MinIO client.
//
//	client, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false)
//	if err != nil { ... }
//	store := minio.NewStore(client, "my-bucket", "catalogs/")
//	err = celltable.WriteTable(ctx, store, "stars.fits", t)
package minio
