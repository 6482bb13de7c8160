// Package fs abstracts the file system operations used to publish files,
// so that tests can inject I/O errors.
//
// Production code uses fs.Default. Tests wrap it in a FaultyFS:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("stars.txt", fs.Fault{FailAfterBytes: 1024})
//
// Reads are not covered; they go through memory maps.
package fs
