package processor

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"copycolors/internal/palette"
	"copycolors/internal/quantize"
	"copycolors/pkg/imgutil"
)

func (o Options) withDefaults() Options {
	if o.Extractor == nil {
		o.Extractor = palette.NewExtractor(quantize.MedianCut{})
	}
	if o.Decode == nil {
		o.Decode = imgutil.Decode
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// ExtractFile decodes a single image and extracts its palette.
func ExtractFile(path string, opts Options) (palette.Palette, error) {
	opts = opts.withDefaults()

	img, err := opts.Decode(path)
	if err != nil {
		return nil, err
	}
	p, err := opts.Extractor.Extract(img.Pix, img.Format, opts.Request())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// RunBatch extracts a palette for every path on a pool of workers. A failing
// file is recorded in its own entry and never stops the others. Cancelling
// ctx stops dispatching new paths; files already handed to a worker are
// finished. The returned Results are frozen.
func RunBatch(ctx context.Context, paths []string, opts Options) (*Results, Summary) {
	opts = opts.withDefaults()
	started := time.Now()

	progress := opts.Progress
	if progress == nil {
		progress = NewProgress(len(paths))
	} else {
		progress.SetTotal(len(paths))
	}

	results := NewResults()
	jobs := make(chan Job)

	workers := opts.Workers
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker(jobs, results, progress, opts)
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- Job{Path: path, Display: DisplayName(opts.Root, path)}:
			case <-ctx.Done():
				opts.Logger.Debug("batch cancelled", "dispatched", progress.Snapshot().Completed, "total", len(paths))
				return
			}
		}
	}()

	wg.Wait()
	results.Freeze()

	summary := results.Summary()
	summary.Total = len(paths)
	summary.Elapsed = time.Since(started)
	opts.Logger.Debug("batch finished", "processed", summary.Processed, "errors", summary.Errors, "elapsed", summary.Elapsed)
	return results, summary
}

func worker(jobs <-chan Job, results *Results, progress *Progress, opts Options) {
	for job := range jobs {
		var outcome Outcome
		p, err := ExtractFile(job.Path, opts)
		if err != nil {
			outcome.Err = err.Error()
			opts.Logger.Debug("extraction failed", "path", job.Path, "error", err)
		} else {
			outcome.Palette = p
			opts.Logger.Trace("extracted", "path", job.Path, "colours", len(p))
		}

		progress.Complete(job.Display)
		if !results.Insert(job.Path, outcome) {
			opts.Logger.Warn("duplicate path in batch", "path", job.Path)
		}
	}
}
