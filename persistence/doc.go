// Package persistence reads and writes centers, checkpoint and parameter
// files.
//
// All formats are line-oriented text. Every write goes through SaveToFile,
// which writes a temporary file in the destination directory, syncs it and
// renames it over the target, so a crash mid-write leaves either the previous
// file or the new one, never a torn file.
//
// # Formats
//
// Centers and checkpoints hold one centroid per line:
//
//	0.12 -0.5 0.33
//	0.7 0.01 -0.2
//
// Parameter files hold the number of tensors that follow, then each tensor as
// a shape line (rank followed by extents) and a line of row-major values:
//
//	1
//	3 2 2 4
//	0.1 0.2 ...
package persistence
