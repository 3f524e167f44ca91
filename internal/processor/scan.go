package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

var (
	ErrNotFound         = errors.New("directory not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidPattern   = errors.New("invalid file name pattern")
	ErrNotDirectory     = errors.New("not a directory")
)

var imageName = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|bmp|ico|tiff|webp|avif|pnm|dds|tga)$`)

// IsImageName reports whether name carries one of the image extensions.
func IsImageName(name string) bool {
	return imageName.MatchString(name)
}

// Scan lists the image files under root whose names also match pattern.
// Only direct children are visited unless recursive is set. An empty
// pattern matches every name. The paths come back sorted.
func Scan(root, pattern string, recursive bool) ([]string, error) {
	var userPattern *regexp.Regexp
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		userPattern = re
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, classify(root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	match := func(name string) bool {
		if !IsImageName(name) {
			return false
		}
		return userPattern == nil || userPattern.MatchString(name)
	}

	paths := []string{}
	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, classify(root, err)
		}
		for _, entry := range entries {
			full := filepath.Join(root, entry.Name())
			if !isFile(full, entry) || !match(entry.Name()) {
				continue
			}
			paths = append(paths, full)
		}
		return paths, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return classify(root, walkErr)
			}
			// unreadable subdirectories are skipped
			return nil
		}
		if d.IsDir() || !isFile(path, d) || !match(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
