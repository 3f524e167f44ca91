package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"copycolors/internal/palette"
	"copycolors/internal/processor"
	"copycolors/internal/tui"
)

func runBatch(ctx context.Context, out io.Writer, dir string, s settings) error {
	paths, err := processor.Scan(dir, s.pattern, s.recursive)
	if err != nil {
		return err
	}
	s.logger.Debug("scanned", "dir", dir, "images", len(paths), "recursive", s.recursive)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := processor.NewProgress(len(paths))
	program := tea.NewProgram(tui.NewProgressModel(progress, cancel))

	uiDone := make(chan struct{})
	go func() {
		if _, err := program.Run(); err != nil {
			s.logger.Warn("progress display failed", "error", err)
		}
		close(uiDone)
	}()

	opts := s.options()
	opts.Progress = progress
	opts.Root = dir
	results, summary := processor.RunBatch(ctx, paths, opts)
	<-uiDone

	fmt.Fprintln(out, tui.RenderSummary(tui.BatchRows(summary)))
	if summary.Processed < summary.Total {
		s.logger.Info("batch stopped before completion", "processed", summary.Processed, "total", summary.Total)
		return nil
	}

	browser := tui.NewBrowser(results.Sorted(), tui.BrowseOptions{
		Count:     s.count,
		Excluded:  s.excluded,
		Reference: s.reference,
		RGB:       s.rgb,
		Root:      dir,
		Reextract: func(path string, req palette.Request) (palette.Palette, error) {
			opts := s.options()
			opts.Count = req.Count
			return processor.ExtractFile(path, opts)
		},
		Clipboard: writeClipboard,
	})
	_, err = tea.NewProgram(browser, tea.WithAltScreen()).Run()
	return err
}
