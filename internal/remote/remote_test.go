package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/cat.png": true,
		"http://example.com":          true,
		"ftp://example.com/cat.png":   false,
		"./pictures":                  false,
		"/tmp/cat.png":                false,
		"C:\\pictures\\cat.png":       false,
		"":                            false,
	}
	for in, want := range cases {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFetchKeepsFileName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != UserAgent {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("image bytes"))
	}))
	defer srv.Close()

	d, err := Fetch(context.Background(), srv.URL+"/images/cat.png?size=large", Options{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if filepath.Base(d.Path) != "cat.png" {
		t.Fatalf("path = %s", d.Path)
	}
	data, err := os.ReadFile(d.Path)
	if err != nil || string(data) != "image bytes" {
		t.Fatalf("content = %q, %v", data, err)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(d.Path)); !os.IsNotExist(err) {
		t.Fatal("temp dir not removed")
	}
}

func TestFetchFallbackName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	d, err := Fetch(context.Background(), srv.URL+"/", Options{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer d.Close()
	if filepath.Base(d.Path) != fallbackName {
		t.Fatalf("path = %s", d.Path)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.URL+"/missing.png", Options{}); !errors.Is(err, ErrDownload) {
		t.Errorf("404: error = %v, want ErrDownload", err)
	}
	if _, err := Fetch(context.Background(), "not a url", Options{}); !errors.Is(err, ErrNotURL) {
		t.Errorf("bad url: error = %v, want ErrNotURL", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Fetch(ctx, srv.URL+"/a.png", Options{}); !errors.Is(err, ErrDownload) {
		t.Errorf("cancelled: error = %v, want ErrDownload", err)
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	body := strings.Repeat("x", 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	d, err := Fetch(context.Background(), srv.URL+"/big.png", Options{MaxBytes: 63})
	if !errors.Is(err, ErrDownload) || !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error = %v, want ErrTooLarge", err)
	}
	if d != nil {
		t.Fatal("oversized download returned a file")
	}

	d, err = Fetch(context.Background(), srv.URL+"/exact.png", Options{MaxBytes: 64})
	if err != nil {
		t.Fatalf("body at the limit: %v", err)
	}
	defer d.Close()
	data, err := os.ReadFile(d.Path)
	if err != nil || string(data) != body {
		t.Fatalf("content = %q, %v", data, err)
	}
}
