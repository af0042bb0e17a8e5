package imagecache

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yangyang3917/minecraft-seed-site/pkg/metrics"
	"github.com/yangyang3917/minecraft-seed-site/pkg/source"
)

func TestEnsureDownloadsThenHits(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/site/image/42.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	m := metrics.New()
	c, err := New(t.TempDir(), server.URL+"/site", &source.Reader{HTTP: server.Client()}, m)
	if err != nil {
		t.Fatal(err)
	}

	img, err := c.Ensure(context.Background(), "image/42.png")
	if err != nil {
		t.Fatalf("first Ensure: %v", err)
	}
	if img.Cached || img.Placeholder {
		t.Errorf("first lookup should be a fresh download: %+v", img)
	}
	data, err := os.ReadFile(img.File)
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("cached file = %q, %v", data, err)
	}

	img, err = c.Ensure(context.Background(), "image/42.png")
	if err != nil || !img.Cached {
		t.Fatalf("second Ensure should hit the cache: %+v, %v", img, err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d requests, want 1", got)
	}
	if got := testutil.ToFloat64(m.ImageRequests.WithLabelValues(metrics.ImageHit)); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ImageRequests.WithLabelValues(metrics.ImageMiss)); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
}

func TestEnsureFailureIsPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := metrics.New()
	c, err := New(t.TempDir(), server.URL, &source.Reader{HTTP: server.Client()}, m)
	if err != nil {
		t.Fatal(err)
	}

	img, err := c.Ensure(context.Background(), "image/missing.png")
	if err == nil {
		t.Fatal("expected error for missing image")
	}
	var statusErr *source.StatusError
	if !errors.As(err, &statusErr) {
		t.Errorf("expected wrapped StatusError, got %v", err)
	}
	if !img.Placeholder {
		t.Errorf("failed lookup should be a placeholder: %+v", img)
	}
	if got := testutil.ToFloat64(m.ImageRequests.WithLabelValues(metrics.ImageError)); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}

	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("failed download left %d files behind", len(entries))
	}
}

func TestEnsureNoPath(t *testing.T) {
	c, err := New(t.TempDir(), "", &source.Reader{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := c.Ensure(context.Background(), "")
	if !errors.Is(err, ErrNoPath) || !img.Placeholder {
		t.Errorf("got %+v, %v", img, err)
	}
}

func TestEnsureRejectsPathsOutsideBase(t *testing.T) {
	base := t.TempDir()
	secret := base + "/../secret.png"
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := New(t.TempDir(), base, source.NewReader(context.Background(), ""), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"image/../../secret.png", "../secret.png", "/etc/passwd"} {
		img, err := c.Ensure(context.Background(), path)
		if !errors.Is(err, ErrUnsafePath) || !img.Placeholder {
			t.Errorf("Ensure(%q) = %+v, %v; want placeholder and ErrUnsafePath", path, img, err)
		}
	}
}

type slowReader struct {
	calls atomic.Int32
	delay time.Duration
}

func (s *slowReader) Read(ctx context.Context, location string) ([]byte, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	return []byte("data"), nil
}

func TestEnsureSharesConcurrentDownloads(t *testing.T) {
	r := &slowReader{delay: 50 * time.Millisecond}
	c, err := New(t.TempDir(), "/images", r, nil)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Ensure(context.Background(), "image/7.png"); err != nil {
				t.Errorf("Ensure: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := r.calls.Load(); got != 1 {
		t.Errorf("reader called %d times, want 1", got)
	}
}

func TestEnsureFromDirectory(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(base+"/image", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(base+"/image/9.png", []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := New(t.TempDir(), base, &source.Reader{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	img, err := c.Ensure(context.Background(), "image/9.png")
	if err != nil || img.Placeholder {
		t.Fatalf("got %+v, %v", img, err)
	}
}
