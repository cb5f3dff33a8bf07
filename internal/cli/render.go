package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindgrove/mindgrove/pkg/pipeline"
	"github.com/mindgrove/mindgrove/pkg/tree"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file path (or base path for multiple formats)
	vizType string  // visualization type: "map" or "dot"
	formats string  // comma-separated output formats
	width   int     // viewport width in pixels
	height  int     // viewport height in pixels
	panX    float64 // viewport pan, map renders only
	panY    float64
	scale   float64 // viewport zoom, map renders only
	noCache bool    // bypass the render cache
}

// newRenderCmd creates the render command for generating artifacts from a
// map file. It supports the card-diagram rendering (SVG, PNG, JSON) and the
// graphviz node-link export (DOT, SVG, PNG).
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		vizType: string(pipeline.VizMap),
		scale:   view.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a mind map to SVG, PNG, JSON, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: map (default), dot")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "viewport width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "viewport height")
	cmd.Flags().Float64Var(&opts.panX, "pan-x", 0, "horizontal pan in pixels")
	cmd.Flags().Float64Var(&opts.panY, "pan-y", 0, "vertical pan in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "zoom scale")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := loadConfig(logger)

	root, err := tree.ImportJSON(path)
	if err != nil {
		return err
	}

	runnerOpts := []pipeline.RunnerOption{pipeline.WithLogger(logger)}
	if !opts.noCache {
		c, err := openCache(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("cache unavailable, rendering without it", "err", err)
		} else {
			defer c.Close()
			runnerOpts = append(runnerOpts, pipeline.WithCache(c))
		}
	}
	runner := pipeline.NewRunner(runnerOpts...)

	popts := pipeline.Options{
		Viz:    pipeline.VizType(opts.vizType),
		Width:  opts.width,
		Height: opts.height,
		Layout: cfg.Layout,
	}
	if popts.Width == 0 {
		popts.Width = cfg.Render.Width
	}
	if popts.Height == 0 {
		popts.Height = cfg.Render.Height
	}
	for _, f := range parseFormats(opts.formats) {
		popts.Formats = append(popts.Formats, pipeline.Format(f))
	}
	if opts.panX != 0 || opts.panY != 0 || opts.scale != view.DefaultScale {
		popts.Transform = view.Transform{PanX: opts.panX, PanY: opts.panY, Scale: opts.scale}
	}

	p := newProgress(logger)
	res, err := runner.Run(ctx, root, popts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d node(s)", res.Stats.NodeCount))

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, ".json")
	}
	for format, data := range res.Artifacts {
		out := outputPath(base, string(format), len(res.Artifacts) > 1)
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	printStats(res.Stats.NodeCount, len(res.Scene.Edges), res.Stats.SceneCached)
	return nil
}

// parseFormats parses the --format flag. If empty, the pipeline default
// applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// outputPath derives the file name for one artifact. When a single artifact
// is produced and the base already carries an extension, the base is used
// as-is.
func outputPath(base, format string, multiple bool) string {
	if !multiple && strings.Contains(base, ".") {
		return base
	}
	return base + "." + format
}
