// Package blobstore abstracts the storage that tables are read from and
// written to.
//
// # Implementations
//
//   - LocalStore: a directory on the local file system; reads are memory-mapped
//   - MemoryStore: in-process, for tests
//   - s3.Store: Amazon S3 (package blobstore/s3)
//   - minio.Store: MinIO and other S3-compatible servers (package blobstore/minio)
//
// # Reading
//
// Blobs are read either sequentially through NewReader or fetched whole with
// Fetch, which issues concurrent range reads:
//
//	blob, err := store.Open(ctx, "catalog.txt.gz")
//	if err != nil { ... }
//	defer blob.Close()
//	data, err := blobstore.Fetch(ctx, blob, blobstore.FetchOptions{Concurrency: 4})
package blobstore
