// Package fs provides the filesystem abstraction used for durable writes of
// centers, checkpoints and parameter files.
//
//   - [LocalFS]: the os package
//   - [FaultyFS]: test wrapper that fails writes, syncs, closes or renames
//     of matching files
//
// Tests simulate a disk filling up halfway through a checkpoint with:
//
//	ffs := fs.NewFaultyFS(nil, fs.Fault{Match: ".tmp-", Ops: fs.OpWrite, AfterBytes: 16})
package fs
