package port

import "context"

// ArchiveObject is one file to keep in the archive.
type ArchiveObject struct {
	Key         string
	Body        []byte
	ContentType string
}

// Archive stores generated sheets and uploaded import images for later audit.
type Archive interface {
	Put(ctx context.Context, obj ArchiveObject) (location string, err error)
}
