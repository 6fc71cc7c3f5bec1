package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sccmap/pkg/config"
)

// browseCommand creates the browse command: an interactive component browser.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache, noArchive, refresh bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse components interactively",
		Long: `Browse components interactively.

Decomposes the graph and opens a terminal browser listing every component
with its size and member preview. Press enter to inspect a component's
members, esc to go back, q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			defaultInputs(cfg)
			return c.runBrowse(cmd.Context(), cfg, noCache, noArchive, refresh)
		},
	}

	addInputFlags(cmd)
	addDecomposeFlags(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "disable the run archive")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute instead of reading cached results")

	return cmd
}

// runBrowse ingests and decomposes the graph, then hands the registry to the
// component browser TUI.
func (c *CLI) runBrowse(ctx context.Context, cfg *config.Config, noCache, noArchive, refresh bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache, noArchive)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.buildOptions(cfg, refresh)

	spinner := newSpinnerWithContext(ctx, "Decomposing graph...")
	spinner.Start()
	g, err := runner.Ingest(ctx, opts)
	if err != nil {
		spinner.StopWithError("Ingest failed")
		return err
	}
	reg, err := runner.Decompose(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Decompose failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}

	if reg.Len() == 0 {
		printWarning("Graph has no components, nothing to browse")
		return nil
	}

	m := NewComponentListModel(g, reg.Components())
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
