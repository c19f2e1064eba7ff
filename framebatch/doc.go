// Package framebatch reads and writes frame batch files.
//
// A frame batch is a plain-text sequence of segments. Each segment is a header
// line, one line per frame holding whitespace-separated numbers, and a line
// containing a single "." as terminator:
//
//	17.logmel
//	0.1 0.2 0.3
//	0.4 0.5 0.6
//	.
//
// Files ending in .zst, .gz or .lz4 are compressed and are decompressed
// transparently by Open and compressed by Create.
//
// Sequential consumers use Reader. Consumers that make several passes over the
// same file, possibly in shuffled order, use Index, which memory-maps
// uncompressed files and locates every segment once.
package framebatch
