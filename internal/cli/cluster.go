package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterview/pkg/cluster"
	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/pipeline"
)

// clusterCommand creates the cluster command that prints the group table.
func (c *CLI) clusterCommand() *cobra.Command {
	var (
		in     inputFlags
		of     optionFlags
		csvOut string
	)

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group read-derived transcripts by exon coverage",
		Long: `Group read-derived transcripts by exon coverage.

Each read cluster is assigned a group for every k from 1 to K (--max-clusters).
The table has one row per read cluster and one column per k; with --csv the
same table is written as CSV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := of.resolve(cmd, c.Config)
			return c.runCluster(cmd.Context(), cmd.OutOrStdout(), in, opts, csvOut)
		},
	}

	in.register(cmd)
	of.register(cmd)
	cmd.Flags().StringVar(&csvOut, "csv", "", "write the group table as CSV to this file")
	strandCompletion(cmd)

	return cmd
}

func (c *CLI) runCluster(ctx context.Context, w io.Writer, in inputFlags, opts pipeline.Options, csvOut string) error {
	g, err := c.loadGene(ctx, in.input, in.gene)
	if err != nil {
		return err
	}
	result, err := c.execute(ctx, g, opts, in.noCache)
	if err != nil {
		return err
	}

	groups := result.Layout.Groups
	if groups == nil {
		printWarning("No read-derived transcripts of %s to cluster", g.Set.Gene)
		return nil
	}

	printSuccess("Grouped %d read clusters of %s for k = 1..%d", groups.Len(), g.Set.Gene, groups.K())
	printNewline()
	out, err := renderGroups(groups)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)

	if csvOut != "" {
		if err := writeGroupsCSV(groups, csvOut); err != nil {
			return err
		}
		printNewline()
		printFile(csvOut)
	}
	return nil
}

// renderGroups draws the per-k group labels as a table.
func renderGroups(g *cluster.Groupings) (string, error) {
	df := g.Table()
	if df.Err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, df.Err, "build group table")
	}
	records := df.Records()

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(records[0]...).
		Rows(records[1:]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorWhite)
			default:
				return lipgloss.NewStyle().Foreground(groupColor(records[row+1][col]))
			}
		})
	return t.Render(), nil
}

// groupPalette colors group numbers so that equal groups line up visually.
var groupPalette = []lipgloss.Color{colorCyan, colorGreen, colorYellow, colorBlue, colorRed, colorGray}

func groupColor(label string) lipgloss.Color {
	n := 0
	for _, r := range label {
		n = n*10 + int(r-'0')
	}
	return groupPalette[n%len(groupPalette)]
}

func writeGroupsCSV(g *cluster.Groupings, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := g.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
