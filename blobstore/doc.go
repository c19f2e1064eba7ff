// Package blobstore publishes run artifacts (final centers, checkpoints and
// parameter files) to durable storage.
//
// Artifacts are always written locally first; a Store receives a copy of the
// same bytes afterwards. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local file system
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore
