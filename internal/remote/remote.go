// Package remote downloads images given as http(s) URLs so they can be
// processed like local files.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	UserAgent      = "copycolors"
	DefaultTimeout = 30 * time.Second

	fallbackName = "download"
)

// DefaultMaxBytes caps a download at 64 MiB. Larger bodies are rejected
// rather than truncated.
const DefaultMaxBytes = 64 << 20

var (
	ErrNotURL   = errors.New("not an http(s) URL")
	ErrDownload = errors.New("download failed")
	ErrTooLarge = errors.New("download too large")
)

type Options struct {
	// Timeout bounds the whole request. If zero, DefaultTimeout is used.
	Timeout  time.Duration
	// MaxBytes bounds the body size. If zero, DefaultMaxBytes is used.
	MaxBytes int64
	Client   *http.Client
	Logger   hclog.Logger
}

// Download is a fetched file in its own temporary directory. Close removes
// the directory.
type Download struct {
	Path string
	dir  string
}

func (d *Download) Close() error {
	if d == nil || d.dir == "" {
		return nil
	}
	return os.RemoveAll(d.dir)
}

// IsURL reports whether s is an absolute http or https URL.
func IsURL(s string) bool {
	_, err := parse(s)
	return err == nil
}

func parse(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrNotURL, s)
	}
	return u, nil
}

// fileName keeps the last path segment of the URL so the decoder can still
// see the extension.
func fileName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return fallbackName
	}
	return name
}

// Fetch downloads rawURL into a fresh temporary directory.
func Fetch(ctx context.Context, rawURL string, opts Options) (*Download, error) {
	u, err := parse(rawURL)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrDownload, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	logger.Debug("downloading", "url", u.String())
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %s", ErrDownload, resp.Status)
	}

	dir, err := os.MkdirTemp("", "copycolors-*")
	if err != nil {
		return nil, err
	}
	d := &Download{Path: filepath.Join(dir, fileName(u)), dir: dir}

	f, err := os.Create(d.Path)
	if err != nil {
		d.Close()
		return nil, err
	}
	limit := opts.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	n, err := io.Copy(f, io.LimitReader(resp.Body, limit+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && n > limit {
		err = fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	logger.Debug("downloaded", "path", d.Path, "bytes", n)
	return d, nil
}
