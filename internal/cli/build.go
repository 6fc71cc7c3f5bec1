package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sccmap/pkg/components"
	"sccmap/pkg/config"
	"sccmap/pkg/digraph"
	"sccmap/pkg/pipeline"
)

// buildCommand creates the build command: ingest, decompose, tag, write GEXF.
func (c *CLI) buildCommand() *cobra.Command {
	var noCache, noArchive, refresh bool

	cmd := &cobra.Command{
		Use:   "build [output.gexf]",
		Short: "Decompose a graph into strongly connected components",
		Long: `Decompose a graph into strongly connected components.

Reads nodes and links from CSV files (or a TOML manifest), partitions the
graph into strongly connected components, names every component, and prints
one "name: [labels]" line per component. When an output path is given the
tagged graph is also written as GEXF; "-" writes GEXF to stdout and
suppresses the summary.

Inputs default to ./nodes.csv and ./links.csv. Settings can also come from
sccmap.toml or SCCMAP_* environment variables; flags win.

Examples:
  sccmap build                             # summary only
  sccmap build graph.gexf                  # summary + GEXF file
  sccmap build --manifest graph.toml -     # GEXF to stdout
  sccmap build -n initials --number out.gexf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			defaultInputs(cfg)
			output := ""
			if len(args) == 1 {
				output = args[0]
			}
			return c.runBuild(cmd.Context(), cfg, output, noCache, noArchive, refresh)
		},
	}

	addInputFlags(cmd)
	addDecomposeFlags(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "disable the run archive")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute instead of reading cached results")

	return cmd
}

// addInputFlags registers the graph input flags shared by build, draw,
// browse, and serve.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("nodes", "", "path to the nodes CSV file (label,id per row)")
	cmd.Flags().String("links", "", "path to the links CSV file (tail,head per row)")
	cmd.Flags().String("manifest", "", "path to a TOML graph manifest (replaces --nodes/--links)")
}

// addDecomposeFlags registers the naming flags shared by the same commands.
func addDecomposeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("naming", "n", pipeline.DefaultNaming, "component naming method: string, initials, cardinal, ordinal")
	cmd.Flags().Bool("number", false, "append node ids to labels")
}

// runBuild executes ingest and decompose and writes the GEXF artifact.
func (c *CLI) runBuild(ctx context.Context, cfg *config.Config, output string, noCache, noArchive, refresh bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache, noArchive)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.buildOptions(cfg, refresh)
	opts.Formats = []string{pipeline.FormatGEXF}

	toStdout := output == "-"

	spinner := newSpinnerWithContext(ctx, "Decomposing graph...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if !toStdout {
		printComponents(res.Graph, res.Registry)
	}

	if output != "" {
		if err := writeArtifact(res.Artifacts[pipeline.FormatGEXF], output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
	}
	if toStdout {
		return nil
	}

	printSuccess("Build complete")
	if output != "" {
		printFile(output)
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.ComponentCount, res.CacheInfo.ArchiveHit)
	printNewline()
	printNextStep("Draw", "sccmap draw chart.svg")

	return nil
}

// printComponents prints one summary line per component, resolving member
// ids to labels where available.
func printComponents(g *digraph.Graph, reg *components.Registry) {
	for _, comp := range reg.Components() {
		labels := make([]string, len(comp.Members))
		for i, id := range comp.Members {
			labels[i] = id
			if n, ok := g.Node(id); ok && n.Label != "" {
				labels[i] = n.Label
			}
		}
		printComponent(comp.Name, labels)
	}
}
