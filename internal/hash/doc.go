// Package hash provides CRC32-Castagnoli checksums, as expected by S3
// for upload integrity checks.
//
//	checksum := hash.CRC32C(data)
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
