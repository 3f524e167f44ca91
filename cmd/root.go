package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"copycolors/internal/colour"
	"copycolors/internal/palette"
	"copycolors/internal/processor"
	"copycolors/internal/quantize"
	"copycolors/internal/remote"
)

const version = "0.1.0"

var (
	nbColors  int
	withRGB   bool
	clip      bool
	excColors []string
	canvas    bool
	bcw       bool
	bcb       bool
	recursive bool
	pattern   string
	threshold float64
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "copycolors <DIR_OR_FILE_OR_URL>",
	Short:         "Fast dominant colours extraction CLI",
	Long:          "copycolors extracts the dominant colours of an image, a remote image or every image of a directory.",
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	flags := rootCmd.Flags()
	flags.IntVarP(&nbColors, "nb-colors", "n", 5, "number of colours to extract (2 to 10)")
	flags.BoolVarP(&withRGB, "rgb", "r", false, "print RGB codes instead of hexadecimal")
	flags.BoolVar(&clip, "clip", false, "copy the extracted colours to the clipboard")
	flags.StringSliceVarP(&excColors, "exc-colors", "e", nil, "colours to exclude in hexadecimal, up to 5 (ex: -e '#000000' -e '#FFFFFF')")
	flags.BoolVarP(&canvas, "canvas", "c", false, "draw the colours as a canvas")
	flags.BoolVar(&bcw, "bcw", false, "order colours from the best contrasting with white to the least")
	flags.BoolVar(&bcb, "bcb", false, "order colours from the best contrasting with black to the least; wins over --bcw")
	flags.BoolVarP(&recursive, "recursive", "R", false, "walk sub-directories too")
	flags.StringVarP(&pattern, "pattern", "p", "", "only keep files whose name matches this regular expression")
	flags.Float64Var(&threshold, "threshold", colour.DefaultThreshold, "normalised distance under which a pixel matches an excluded colour")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// settings is the validated form of the command line flags.
type settings struct {
	count     int
	rgb       bool
	clip      bool
	canvas    bool
	recursive bool
	pattern   string
	excluded  colour.ExclusionSet
	reference *colour.Color
	extractor *palette.Extractor
	logger    hclog.Logger
}

func newLogger(w io.Writer) hclog.Logger {
	level := hclog.Warn
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "copycolors",
		Level:  level,
		Output: w,
	})
}

func loadSettings(logger hclog.Logger) (settings, error) {
	if err := palette.ValidateCount(nbColors); err != nil {
		return settings{}, err
	}
	if threshold < 0 || threshold > 1 {
		return settings{}, fmt.Errorf("--threshold must be between 0 and 1, got %g", threshold)
	}

	colors, err := colour.ParseHexList(excColors)
	if err != nil {
		return settings{}, err
	}
	excluded, err := colour.NewExclusionSet(colors...)
	if err != nil {
		return settings{}, err
	}

	var reference *colour.Color
	switch {
	case bcb:
		ref := colour.Black
		reference = &ref
	case bcw:
		ref := colour.White
		reference = &ref
	}

	return settings{
		count:     nbColors,
		rgb:       withRGB,
		clip:      clip,
		canvas:    canvas,
		recursive: recursive,
		pattern:   pattern,
		excluded:  excluded,
		reference: reference,
		extractor: palette.NewExtractor(quantize.MedianCut{}, palette.WithThreshold(threshold)),
		logger:    logger,
	}, nil
}

func (s settings) options() processor.Options {
	return processor.Options{
		Count:     s.count,
		Excluded:  s.excluded,
		Reference: s.reference,
		Extractor: s.extractor,
		Logger:    s.logger,
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())
	s, err := loadSettings(logger)
	if err != nil {
		return err
	}

	target := args[0]
	ctx := cmd.Context()

	if remote.IsURL(target) {
		download, err := remote.Fetch(ctx, target, remote.Options{Logger: logger.Named("remote")})
		if err != nil {
			return err
		}
		defer download.Close()
		return extractFile(cmd.OutOrStdout(), download.Path, s)
	}

	info, err := os.Stat(target)
	if err == nil && info.IsDir() {
		return runBatch(ctx, cmd.OutOrStdout(), target, s)
	}
	if !processor.IsImageName(target) {
		return fmt.Errorf("%s is neither a directory nor an image file (.png, .jpg, ...)", target)
	}
	return extractFile(cmd.OutOrStdout(), target, s)
}
