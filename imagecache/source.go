package imagecache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrNotFound is returned by a Source when the key does not exist.
var ErrNotFound = errors.New("imagecache: image not found")

// Source opens the encoded bytes of an image by key.
type Source interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// Open calls f(ctx, key).
func (f SourceFunc) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return f(ctx, key)
}

// DirSource serves keys as slash-separated paths below a directory.
// Keys cannot escape the directory.
type DirSource struct {
	Root string
}

// Open opens Root/key.
func (d DirSource) Open(_ context.Context, key string) (io.ReadCloser, error) {
	name := strings.TrimPrefix(key, "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("imagecache: invalid key %q", key)
	}
	f, err := os.OpenInRoot(d.Root, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// HTTPSource fetches keys relative to a base URL.
type HTTPSource struct {
	BaseURL string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Open issues a GET for BaseURL/key.
func (h HTTPSource) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	base, err := url.Parse(strings.TrimSuffix(h.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("imagecache: base url: %w", err)
	}
	ref, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return nil, fmt.Errorf("imagecache: key %q: %w", key, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, err
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("imagecache: GET %s: %s", key, resp.Status)
	}
	return resp.Body, nil
}
