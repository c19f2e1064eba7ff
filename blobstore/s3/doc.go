// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("runs/2026-10-17/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// Puts go through the feature/s3/manager uploader, so large artifacts are
// uploaded as multipart uploads.
package s3
