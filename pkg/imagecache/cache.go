// Package imagecache fetches seed screenshots and keeps a copy on disk so
// they are only downloaded once.
package imagecache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
	"k8s.io/klog/v2"

	"github.com/yangyang3917/minecraft-seed-site/pkg/metrics"
	"github.com/yangyang3917/minecraft-seed-site/pkg/source"
)

var (
	// ErrNoPath is returned for cards that have no image.
	ErrNoPath = errors.New("no image path")
	// ErrUnsafePath is returned for paths that would leave the image base.
	ErrUnsafePath = errors.New("image path escapes image base")
)

// Reader fetches an image from the image base. *source.Reader satisfies it.
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// Image is the outcome of a lookup. When Placeholder is set, the card
// should show its placeholder instead of File.
type Image struct {
	Path        string
	File        string
	Cached      bool
	Placeholder bool
}

// Cache stores images under dir, one file per image path. It is safe for
// concurrent use.
type Cache struct {
	dir     string
	base    string
	reader  Reader
	metrics *metrics.Metrics
	group   singleflight.Group
}

// New returns a cache that downloads from base (a URL, github:// location
// or directory) into dir.
func New(dir, base string, r Reader, m *metrics.Metrics) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image cache dir: %w", err)
	}
	return &Cache{dir: dir, base: base, reader: r, metrics: m}, nil
}

// Ensure returns the cached copy of path, downloading it first if needed.
// Concurrent calls for the same path share one download. On failure the
// returned Image is a placeholder and the error says why; nothing else is
// affected.
func (c *Cache) Ensure(ctx context.Context, path string) (Image, error) {
	log := klog.FromContext(ctx).WithValues("image", path)

	if path == "" {
		return Image{Placeholder: true}, ErrNoPath
	}
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return Image{Path: path, Placeholder: true}, ErrUnsafePath
	}

	file := c.fileFor(path)
	if _, err := os.Stat(file); err == nil {
		c.metrics.ObserveImage(metrics.ImageHit)
		return Image{Path: path, File: file, Cached: true}, nil
	}

	_, err, shared := c.group.Do(path, func() (interface{}, error) {
		return nil, c.download(ctx, path, file)
	})
	if err != nil {
		c.metrics.ObserveImage(metrics.ImageError)
		log.V(2).Info("image unavailable, using placeholder", "error", err)
		return Image{Path: path, Placeholder: true}, err
	}

	c.metrics.ObserveImage(metrics.ImageMiss)
	log.V(4).Info("image downloaded", "file", file, "shared", shared)
	return Image{Path: path, File: file}, nil
}

func (c *Cache) download(ctx context.Context, path, file string) error {
	// another caller may have finished between our Stat and Do
	if _, err := os.Stat(file); err == nil {
		return nil
	}

	data, err := c.reader.Read(ctx, source.Join(c.base, path))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("fetch %s: empty response", path)
	}

	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("store %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), file); err != nil {
		return fmt.Errorf("store %s: %w", path, err)
	}
	return nil
}

func (c *Cache) fileFor(path string) string {
	return filepath.Join(c.dir, strconv.FormatUint(xxhash.Sum64String(path), 16)+filepath.Ext(path))
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}
