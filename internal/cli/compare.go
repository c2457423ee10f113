package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/palettecam/internal/colour"
	"github.com/jmylchreest/palettecam/internal/source"
)

// Output formats for compare.
const (
	formatTable = "table"
)

type compareOptions struct {
	global     *globalOptions
	reduce     reduceFlags
	algorithms []string
	format     string
	preview    string
}

func newCompareCmd(global *globalOptions) *cobra.Command {
	opts := &compareOptions{global: global}

	cmd := &cobra.Command{
		Use:   "compare <source>",
		Short: "Compare the palettes produced by each algorithm",
		Long: `Sample a source once and reduce it with several algorithms side by side.

Each column is one algorithm's palette, ordered by weight. Sources are
the same as for extract.

Examples:
  # Compare all algorithms on a photo
  palettecam compare photo.jpg

  # Compare two algorithms on a dump, as JSON
  palettecam compare --algorithms histogram,mediancut -f json frame.rgb.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], opts)
		},
	}

	all := make([]string, 0, len(colour.ValidAlgorithms()))
	for _, a := range colour.ValidAlgorithms() {
		all = append(all, string(a))
	}

	opts.reduce.register(cmd.Flags(), false)
	cmd.Flags().StringSliceVar(&opts.algorithms, "algorithms", all, "algorithms to compare")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format (table, json)")
	cmd.Flags().StringVar(&opts.preview, "preview", previewAuto, "show colour previews (auto, always, never)")

	return cmd
}

func runCompare(cmd *cobra.Command, path string, opts *compareOptions) error {
	if err := applyEnv(cmd.Flags(), os.LookupEnv); err != nil {
		return err
	}
	cfg, err := opts.reduce.config()
	if err != nil {
		return err
	}

	reducers := make([]colour.Reducer, len(opts.algorithms))
	algorithms := make([]colour.Algorithm, len(opts.algorithms))
	for i, name := range opts.algorithms {
		algorithms[i] = colour.Algorithm(strings.ToLower(strings.TrimSpace(name)))
		if reducers[i], err = colour.NewReducer(algorithms[i]); err != nil {
			return err
		}
	}
	if len(reducers) == 0 {
		return fmt.Errorf("no algorithms to compare")
	}

	format := strings.ToLower(opts.format)
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("%w: %s (supported: table, json)", ErrUnsupportedFormat, opts.format)
	}
	showPreview, err := usePreview(opts.preview, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger := opts.global.logger(cmd).Named("compare")

	srcOpts := opts.reduce.sourceOptions(cfg)
	srcOpts.Logger = logger
	samples, err := source.Load(cmd.Context(), path, srcOpts)
	if err != nil {
		return err
	}

	// Reducers never mutate their input, so they share the sample slice.
	palettes := make([]*colour.Palette, len(reducers))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, r := range reducers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			palettes[i] = r.Reduce(samples.Pixels, cfg.ColorCount)
			logger.Debug("reduced palette", "algorithm", algorithms[i], "colours", palettes[i].Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to reduce palettes: %w", err)
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeCompareJSON(out, palettes)
	}

	fmt.Fprintf(out, "%s: %d samples, %d colours\n\n", samples.Path, len(samples.Pixels), cfg.ColorCount)
	_, err = io.WriteString(out, compareTable(palettes, showPreview).Render())
	return err
}

// compareTable lays the palettes out one per column.
func compareTable(palettes []*colour.Palette, showPreview bool) *Table {
	headers := []string{"#"}
	rows := 0
	for _, p := range palettes {
		headers = append(headers, string(p.Algorithm))
		rows = max(rows, p.Len())
	}

	table := NewTable(headers)
	for i := range rows {
		row := []string{strconv.Itoa(i + 1)}
		for _, p := range palettes {
			row = append(row, compareCell(p, i, showPreview))
		}
		table.AddRow(row)
	}
	return table
}

func compareCell(p *colour.Palette, i int, showPreview bool) string {
	c, err := p.Get(i)
	if err != nil {
		return ""
	}
	weight := fmt.Sprintf("%5.1f%%", p.Weight(i)*100)
	if showPreview {
		return colour.ColourPreviewWithText(c, c.Hex(), 9) + " " + weight
	}
	return c.Hex() + " " + weight
}

func writeCompareJSON(w io.Writer, palettes []*colour.Palette) error {
	docs := make([]json.RawMessage, len(palettes))
	for i, p := range palettes {
		data, err := p.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		docs[i] = data
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
