// Package media keeps the image URLs stored on records consistent with the
// objects in the object store.
//
// Each image slot moves through one of three transitions on update:
//
//	KEEP     no delete flag, no file: the URL is unchanged
//	REPLACE  a new file: it is uploaded first and the old object becomes stale
//	CLEAR    the delete flag: the old object is removed and the URL is nil
//
// Stale objects are only removed once the record has been written (Commit).
// Freshly uploaded objects are removed again when the write fails (Rollback).
package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yukikurage/alumni-portal-api/internal/metrics"
	"github.com/yukikurage/alumni-portal-api/internal/storage"
	"github.com/yukikurage/alumni-portal-api/internal/utils"
)

var (
	ErrUpload       = errors.New("failed to upload image")
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)

// Manager uploads and removes the objects behind record image fields.
type Manager struct {
	store    storage.Store
	logger   *log.Logger
	maxBytes int64
	now      func() time.Time
}

// NewManager creates a Manager. Files larger than maxBytes are rejected; a
// non-positive maxBytes disables the check.
func NewManager(store storage.Store, logger *log.Logger, maxBytes int64) *Manager {
	return &Manager{
		store:    store,
		logger:   logger.WithPrefix("media"),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// NewRef returns a reference for objects uploaded before their record has an id.
func NewRef() string {
	return uuid.NewString()
}

// Slot is the requested state of one image field.
type Slot struct {
	Current *string
	Delete  bool
	File    *multipart.FileHeader
}

// Plan collects the object changes of one request so they can be committed
// or rolled back together with the database write.
type Plan struct {
	uploaded []string
	stale    []string
}

// Uploaded returns the URLs uploaded under the plan.
func (p *Plan) Uploaded() []string {
	return p.uploaded
}

// Stale returns the URLs that become unreferenced once the plan is committed.
func (p *Plan) Stale() []string {
	return p.stale
}

// Upload stores file under kind/ref and returns its public URL. index is the
// position within a gallery, or -1 for a primary image.
func (m *Manager) Upload(ctx context.Context, kind, ref string, index int, file *multipart.FileHeader) (string, error) {
	if m.maxBytes > 0 && file.Size > m.maxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, file.Filename, file.Size)
	}

	key, err := m.objectKey(kind, ref, index, file.Filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: failed to open %s: %v", ErrUpload, file.Filename, err)
	}
	defer src.Close()

	url, err := m.store.Put(ctx, key, src, file.Size, contentType(file))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	m.logger.Debug("uploaded object", "key", key, "size", file.Size)
	return url, nil
}

// Reconcile applies the requested transition to a primary image slot and
// returns the URL to store. A failed upload aborts the request; nothing is
// left uploaded and the current object is untouched.
func (m *Manager) Reconcile(ctx context.Context, plan *Plan, kind, ref string, slot Slot) (*string, error) {
	switch {
	case slot.Delete:
		// CLEAR takes precedence over a file sent in the same request.
		if slot.Current != nil {
			m.Cleanup(ctx, *slot.Current)
		}
		return nil, nil
	case slot.File != nil:
		url, err := m.Upload(ctx, kind, ref, -1, slot.File)
		if err != nil {
			return nil, err
		}
		plan.uploaded = append(plan.uploaded, url)
		if slot.Current != nil && *slot.Current != url {
			plan.stale = append(plan.stale, *slot.Current)
		}
		return &url, nil
	default:
		return slot.Current, nil
	}
}

// ReconcileGallery returns current without the URLs in remove, followed by the
// uploaded files. Removed URLs become stale. Files that fail to upload are
// logged and skipped.
func (m *Manager) ReconcileGallery(ctx context.Context, plan *Plan, kind, ref string, current, remove []string, files []*multipart.FileHeader) []string {
	removed := make(map[string]struct{}, len(remove))
	for _, url := range remove {
		removed[url] = struct{}{}
	}

	gallery := make([]string, 0, len(current)+len(files))
	for _, url := range current {
		if _, ok := removed[url]; ok {
			plan.stale = append(plan.stale, url)
			continue
		}
		gallery = append(gallery, url)
	}

	for i, file := range files {
		url, err := m.Upload(ctx, kind, ref, len(current)+i, file)
		if err != nil {
			m.logger.Warn("skipping gallery image", "file", file.Filename, "err", err)
			continue
		}
		plan.uploaded = append(plan.uploaded, url)
		gallery = append(gallery, url)
	}

	return gallery
}

// Commit removes the objects the plan made stale. Call it after the record
// has been written.
func (m *Manager) Commit(ctx context.Context, plan *Plan) {
	m.Cleanup(ctx, plan.stale...)
}

// Rollback removes the objects uploaded under the plan. Call it when the
// record write failed.
func (m *Manager) Rollback(ctx context.Context, plan *Plan) {
	m.Discard(ctx, plan.uploaded...)
}

// Cleanup deletes the objects behind urls. Failures are logged and counted,
// never returned: a leaked object is preferred over failing the request.
// URLs that this store did not produce are skipped.
func (m *Manager) Cleanup(ctx context.Context, urls ...string) {
	m.remove(ctx, "cleanup", urls)
}

// Discard is Cleanup for objects that were uploaded during a failed request.
func (m *Manager) Discard(ctx context.Context, urls ...string) {
	m.remove(ctx, "discard", urls)
}

func (m *Manager) remove(ctx context.Context, reason string, urls []string) {
	// Finish even when the client has gone away.
	ctx = context.WithoutCancel(ctx)

	for _, url := range urls {
		key, ok := m.store.KeyFromURL(url)
		if !ok {
			m.logger.Debug("skipping foreign url", "reason", reason, "url", url)
			continue
		}
		err := m.store.Delete(ctx, key)
		switch {
		case err == nil:
			m.logger.Debug("deleted object", "reason", reason, "key", key)
		case errors.Is(err, storage.ErrObjectNotFound):
			m.logger.Debug("object already gone", "reason", reason, "key", key)
		default:
			metrics.StorageCleanupFailures.Inc()
			m.logger.Warn("failed to delete object", "reason", reason, "key", key, "err", err)
		}
	}
}

// objectKey builds <kind>/<ref>-<unixnano>[-<index>]-<random><ext>.
func (m *Manager) objectKey(kind, ref string, index int, filename string) (string, error) {
	suffix, err := utils.RandomHex(4)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s-%d", kind, ref, m.now().UnixNano())
	if index >= 0 {
		fmt.Fprintf(&b, "-%d", index)
	}
	b.WriteString("-" + suffix)
	b.WriteString(strings.ToLower(filepath.Ext(filename)))
	return b.String(), nil
}

func contentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
