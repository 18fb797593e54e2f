package storage

import (
	"context"
	"io"

	"github.com/yukikurage/alumni-portal-api/internal/metrics"
)

// Instrumented counts calls to the wrapped store.
type Instrumented struct {
	Store
}

var _ Store = (*Instrumented)(nil)

// NewInstrumented wraps s.
func NewInstrumented(s Store) *Instrumented {
	return &Instrumented{Store: s}
}

// Put implements Store.
func (i *Instrumented) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	url, err := i.Store.Put(ctx, key, r, size, contentType)
	metrics.StorageOperations.WithLabelValues("put", result(err)).Inc()
	return url, err
}

// Delete implements Store.
func (i *Instrumented) Delete(ctx context.Context, key string) error {
	err := i.Store.Delete(ctx, key)
	metrics.StorageOperations.WithLabelValues("delete", result(err)).Inc()
	return err
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
