package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterview/pkg/pipeline"
)

// orderCommand creates the order command that prints the display order.
func (c *CLI) orderCommand() *cobra.Command {
	var (
		in inputFlags
		of optionFlags
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Print transcripts in display order",
		Long: `Print transcripts in display order.

Transcripts are ordered greedily: starting from the first transcript, the
next row is always the unplaced transcript whose region set differs least
from the current one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := of.resolve(cmd, c.Config)
			return c.runOrder(cmd.Context(), in, opts)
		},
	}

	in.register(cmd)
	of.register(cmd)
	strandCompletion(cmd)

	return cmd
}

func (c *CLI) runOrder(ctx context.Context, in inputFlags, opts pipeline.Options) error {
	g, err := c.loadGene(ctx, in.input, in.gene)
	if err != nil {
		return err
	}
	result, err := c.execute(ctx, g, opts, in.noCache)
	if err != nil {
		return err
	}

	l := result.Layout
	if l.Empty {
		printWarning("No transcripts of %s to order", g.Set.Gene)
		return nil
	}

	printSuccess("%s · %d transcripts · %s", l.Gene, l.Order.Len(), l.Direction)
	printNewline()
	width := len(strconv.Itoa(l.Order.Len()))
	for row, ix := range l.Order.Indices {
		p := l.Transcripts[ix]
		label := l.Order.Labels[row]
		marker := " "
		if p.Annotated {
			marker = "*"
		}
		fmt.Printf("%s %s %s\n",
			StyleNumber.Render(fmt.Sprintf("%*d", width, row)),
			StyleDim.Render(marker),
			StyleValue.Render(label))
	}
	printNewline()
	printDetail("* annotated transcript")
	return nil
}
