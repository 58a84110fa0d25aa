package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNoItem is returned by GetItem when the key is not set.
var ErrNoItem = errors.New("storage: no item")

// LocalStorage is a durable string store scoped to one browser, the
// server-side stand-in for window.localStorage.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Backend hands out LocalStorage namespaces, one per browser.
type Backend interface {
	For(namespace string) LocalStorage
}

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
