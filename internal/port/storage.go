package port

import "context"

// ObjectStorage archives raw document payloads for audit.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
