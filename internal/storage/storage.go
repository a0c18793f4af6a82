package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ObjectReader opens objects held by an object storage provider.
type ObjectReader interface {
	// Open streams the object at key in bucket. The caller closes the reader.
	// An empty bucket means the reader's default bucket.
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Error constants for storage layer
var (
	ErrObjectNotFound = errors.New("object not found in storage")
	ErrInvalidURI     = errors.New("invalid object URI")
)

// Location names one object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// IsS3URI reports whether source names an object rather than a local path.
func IsS3URI(source string) bool {
	return strings.HasPrefix(source, "s3://")
}

// ParseS3URI splits "s3://bucket/path/to/key". The bucket may be omitted
// ("s3:///key") to use the configured default bucket.
func ParseS3URI(uri string) (Location, error) {
	if !IsS3URI(uri) {
		return Location{}, fmt.Errorf("%w: %q does not start with s3://", ErrInvalidURI, uri)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(uri, "s3://"), "/")
	if !ok || key == "" {
		return Location{}, fmt.Errorf("%w: %q has no object key", ErrInvalidURI, uri)
	}
	return Location{Bucket: bucket, Key: key}, nil
}
