package cmd

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"copycolors/internal/processor"
	"copycolors/internal/tui"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func extractFile(out io.Writer, path string, s settings) error {
	p, err := processor.ExtractFile(path, s.options())
	if err != nil {
		return err
	}
	s.logger.Debug("extracted", "path", path, "colours", p.Strings(s.rgb))

	if s.canvas {
		fmt.Fprintln(out, tui.Canvas(p, s.rgb, tui.TerminalWidth()))
	} else {
		fmt.Fprintln(out, tui.Inline(p, s.rgb))
	}

	if s.clip {
		if err := writeClipboard(p.Join(s.rgb)); err != nil {
			s.logger.Warn("could not copy to clipboard", "error", err)
		}
	}
	return nil
}
