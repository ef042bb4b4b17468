package interfaces

import "context"

type Uploader interface {
	UploadBytes(ctx context.Context, publicID string, b []byte) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}
