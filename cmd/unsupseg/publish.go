package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hupe1980/unsupseg/blobstore"
	"github.com/hupe1980/unsupseg/blobstore/minio"
	"github.com/hupe1980/unsupseg/blobstore/s3"
)

// openStore opens the blob store named by raw:
//
//	file:///var/lib/unsupseg           local directory
//	s3://bucket/prefix?region=eu-west-1  AWS S3 (default credential chain)
//	minio://host:9000/bucket/prefix?secure=true
func openStore(ctx context.Context, raw string) (blobstore.Store, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("%s: missing directory", raw)
		}
		return blobstore.NewLocalStore(u.Path), nil

	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("%s: missing bucket", raw)
		}
		opts := []s3.Option{s3.WithPrefix(strings.Trim(u.Path, "/"))}
		if region := u.Query().Get("region"); region != "" {
			opts = append(opts, s3.WithRegion(region))
		}
		if profile := u.Query().Get("profile"); profile != "" {
			opts = append(opts, s3.WithProfile(profile))
		}
		return s3.New(ctx, u.Host, opts...)

	case "minio":
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("%s: want minio://host/bucket[/prefix]", raw)
		}
		return minio.NewFromEnv(u.Host, bucket, prefix, u.Query().Get("secure") == "true")

	default:
		return nil, fmt.Errorf("%s: unsupported scheme %q", raw, u.Scheme)
	}
}
