package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/palettecam/internal/colour"
	"github.com/jmylchreest/palettecam/internal/source"
)

// ErrUnsupportedFormat is returned for an unknown --format value.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Output formats for a single palette.
const (
	formatHex  = "hex"
	formatRGB  = "rgb"
	formatJSON = "json"
	formatText = "text"
)

var paletteFormats = []string{formatHex, formatRGB, formatJSON, formatText}

type extractOptions struct {
	global  *globalOptions
	reduce  reduceFlags
	format  string
	output  string
	preview string
	pad     bool
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{global: global}

	cmd := &cobra.Command{
		Use:   "extract <source>",
		Short: "Extract a colour palette from an image or pixel dump",
		Long: `Extract a colour palette from an image or a dump of pixel samples.

The source may be an image file (JPEG, PNG, GIF, WebP), a directory (a
random image is picked), an http(s) URL, or a pixel dump. Dumps are raw
RGB triples (.rgb) or a JSON array of [r, g, b] triples (.json), either
optionally compressed with gzip (.gz), bzip2 (.bz2) or xz (.xz).

The palette holds at most --colours entries, ordered by how many samples
each represents. It may be shorter when the input has fewer distinct
colours; --pad repeats the last colour (with zero weight) up to the
requested length.

Defaults for --algorithm, --colours, --max-samples and --min-alpha may be
set with PALETTECAM_ALGORITHM, PALETTECAM_COLOURS, PALETTECAM_MAX_SAMPLES
and PALETTECAM_MIN_ALPHA.

Examples:
  # Extract 8 colours with median cut
  palettecam extract photo.jpg

  # Extract 5 colours from a compressed camera dump using the histogram
  palettecam extract -a histogram -c 5 frame.rgb.xz

  # JSON output with weights, written to a file
  palettecam extract -f json -o palette.json photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	opts.reduce.register(cmd.Flags(), true)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatHex, "output format (hex, rgb, json, text)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.preview, "preview", previewAuto, "show colour previews (auto, always, never)")
	cmd.Flags().BoolVar(&opts.pad, "pad", false, "pad the palette to exactly --colours entries")

	return cmd
}

func runExtract(cmd *cobra.Command, path string, opts *extractOptions) error {
	if err := applyEnv(cmd.Flags(), os.LookupEnv); err != nil {
		return err
	}
	cfg, err := opts.reduce.config()
	if err != nil {
		return err
	}
	if !slices.Contains(paletteFormats, strings.ToLower(opts.format)) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, opts.format, strings.Join(paletteFormats, ", "))
	}

	logger := opts.global.logger(cmd).Named("extract")

	// Files only get previews when asked for explicitly.
	var previewTarget io.Writer
	if opts.output == "" {
		previewTarget = cmd.OutOrStdout()
	}
	showPreview, err := usePreview(opts.preview, previewTarget)
	if err != nil {
		return err
	}

	srcOpts := opts.reduce.sourceOptions(cfg)
	srcOpts.Logger = logger
	samples, err := source.Load(cmd.Context(), path, srcOpts)
	if err != nil {
		return err
	}
	if len(samples.Pixels) == 0 {
		logger.Warn("no usable pixels in source", "path", samples.Path)
	}

	reducer, err := colour.NewReducer(cfg.Algorithm)
	if err != nil {
		return err
	}

	start := time.Now()
	palette := reducer.Reduce(samples.Pixels, cfg.ColorCount)
	logger.Debug("reduced palette",
		"algorithm", cfg.Algorithm,
		"samples", len(samples.Pixels),
		"colours", palette.Len(),
		"duration", time.Since(start),
	)

	if palette.Len() < cfg.ColorCount {
		if opts.pad {
			palette = palette.Pad(cfg.ColorCount)
		} else {
			logger.Info("palette is shorter than requested",
				"requested", cfg.ColorCount,
				"colours", palette.Len(),
			)
		}
	}

	text, err := formatPalette(palette, opts.format, showPreview)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "path", opts.output)
		return nil
	}
	if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}

	return nil
}

// formatPalette renders the palette in the requested format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch strings.ToLower(format) {
	case formatHex:
		return formatLines(palette, showPreview, colour.RGB.Hex), nil
	case formatRGB:
		return formatLines(palette, showPreview, colour.RGB.String), nil
	case formatJSON:
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case formatText:
		return strings.TrimRight(palette.String(), "\n") + "\n", nil
	default:
		return "", fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, format, strings.Join(paletteFormats, ", "))
	}
}

func formatLines(palette *colour.Palette, showPreview bool, render func(colour.RGB) string) string {
	var sb strings.Builder
	for _, c := range palette.All() {
		if showPreview {
			sb.WriteString(colour.ColourPreview(c, 8))
			sb.WriteByte(' ')
		}
		sb.WriteString(render(c))
		sb.WriteByte('\n')
	}
	return sb.String()
}
