// Package mmap maps files read-only into memory.
//
//	m, err := mmap.Open("catalog.fits")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// On Unix the mapping uses mmap(2) and madvise(2); on Windows it uses
// CreateFileMapping and MapViewOfFile, where Advise does nothing.
package mmap
