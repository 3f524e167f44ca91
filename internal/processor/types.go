package processor

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"copycolors/internal/colour"
	"copycolors/internal/palette"
	"copycolors/pkg/imgutil"
)

type DecodeFunc func(path string) (*imgutil.Image, error)

type Options struct {
	Count     int
	Excluded  colour.ExclusionSet
	Reference *colour.Color

	// Root is trimmed from the file names reported to Progress.
	Root string

	Extractor *palette.Extractor
	Decode    DecodeFunc
	Workers   int
	Progress  *Progress
	Logger    hclog.Logger
}

// Job is one file handed to a worker. Display is Path relative to the batch
// root, for progress reporting.
type Job struct {
	Path    string
	Display string
}

// Outcome is the per-file result of a batch: a palette or an error message.
type Outcome struct {
	Palette palette.Palette
	Err     string
}

func (o Outcome) OK() bool {
	return o.Err == ""
}

type Entry struct {
	Path string
	Outcome
}

type Summary struct {
	Total     int
	Processed int
	Errors    int
	Elapsed   time.Duration
}

// Request builds the extractor request for these options.
func (o Options) Request() palette.Request {
	return palette.Request{
		Count:     o.Count,
		Excluded:  o.Excluded,
		Reference: o.Reference,
	}
}

// DisplayName is path relative to root, or path itself when root is empty or
// path lies outside it.
func DisplayName(root, path string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
