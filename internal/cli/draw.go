package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sccmap/pkg/config"
	"sccmap/pkg/pipeline"
)

// defaultDrawOutput is used when no output path is given.
const defaultDrawOutput = "chart.svg"

// drawCommand creates the draw command: build plus layout and chart rendering.
func (c *CLI) drawCommand() *cobra.Command {
	var noCache, noArchive, refresh bool

	cmd := &cobra.Command{
		Use:   "draw [output.svg|png|pdf|json]",
		Short: "Render a component chart of the graph",
		Long: `Render a component chart of the graph.

Runs the full pipeline: ingest, decompose, layout, render. Node positions
come from the configured layout method; every node is colored by its
component. The output format is inferred from the file extension; "-"
writes to stdout using --format (svg when unset). PNG and PDF conversion
requires rsvg-convert on PATH.

Examples:
  sccmap draw                              # chart.svg
  sccmap draw graph.png -l dot             # graphviz layout, PNG
  sccmap draw --seed 7 -l eades chart.svg  # force-directed layout
  sccmap draw -f svg - > chart.svg         # stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			defaultInputs(cfg)
			output := defaultDrawOutput
			if len(args) == 1 {
				output = args[0]
			}
			return c.runDraw(cmd.Context(), cfg, output, noCache, noArchive, refresh)
		},
	}

	addInputFlags(cmd)
	addDecomposeFlags(cmd)
	cmd.Flags().StringP("layout", "l", pipeline.DefaultLayout, "layout method: auto, dot, eades, isomap")
	cmd.Flags().Int("width", pipeline.DefaultWidth, "frame width in pixels")
	cmd.Flags().Int("height", pipeline.DefaultHeight, "frame height in pixels")
	cmd.Flags().Int64("seed", pipeline.DefaultSeed, "random seed for stochastic layouts")
	cmd.Flags().StringP("format", "f", "", "output format when writing to stdout: svg, png, pdf, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "disable the run archive")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute instead of reading cached results")

	return cmd
}

// runDraw executes the full pipeline and writes the chart artifact.
func (c *CLI) runDraw(ctx context.Context, cfg *config.Config, output string, noCache, noArchive, refresh bool) error {
	format, err := resolveFormat(output, cfg.Format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache, noArchive)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.buildOptions(cfg, refresh)
	opts.Formats = []string{format}

	toStdout := output == "-"

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s chart...", format))
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Draw failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if err := writeArtifact(res.Artifacts[format], output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	if toStdout {
		return nil
	}

	printSuccess("Chart rendered")
	printFile(output)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.ComponentCount, res.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Serve", "sccmap serve --watch")

	return nil
}

// resolveFormat picks the output format: the file extension wins, the
// configured format covers stdout, svg is the fallback.
func resolveFormat(output, configured string) (string, error) {
	format := configured
	if output != "-" {
		if ext := formatFromPath(output); ext != "" {
			format = ext
		}
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// formatFromPath infers the output format from the file extension.
func formatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
