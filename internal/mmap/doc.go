// Package mmap provides read-only memory-mapped file access.
//
// Frame batch files are indexed once and then read segment by segment in an
// arbitrary (possibly shuffled) order on every clustering pass. Mapping the
// file lets the index hand out sub-slices without re-reading through the
// kernel buffers each pass.
//
// # Usage
//
//	m, err := mmap.Open("train.fbatch")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix: mmap(2), with madvise(2) access hints
//   - Windows: CreateFileMapping/MapViewOfFile (hints are no-ops)
package mmap
