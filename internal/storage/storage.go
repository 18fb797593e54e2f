// Package storage stores uploaded media objects and maps them to the public
// URLs kept in database rows.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrObjectNotFound is returned when deleting a key that does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Store is an object store addressed by key. Put returns the public URL of
// the stored object.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// PublicURL maps keys to URLs under a public base such as a CDN domain or
// an R2 public bucket URL.
type PublicURL struct {
	base string
}

// NewPublicURL creates a PublicURL for base.
func NewPublicURL(base string) PublicURL {
	return PublicURL{base: strings.TrimRight(base, "/")}
}

// URL returns the public URL of key.
func (p PublicURL) URL(key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(part, " ", "%20")
	}
	return p.base + "/" + strings.Join(parts, "/")
}

// KeyFromURL reverses URL. It reports false for URLs outside the base, which
// were not produced by this store.
func (p PublicURL) KeyFromURL(url string) (string, bool) {
	prefix := p.base + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.ReplaceAll(strings.TrimPrefix(url, prefix), "%20", " ")
	if key == "" {
		return "", false
	}
	return key, true
}
