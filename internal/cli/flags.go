package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/clusterview/pkg/pipeline"
)

// inputFlags select the transcript set and gene shared by every layout command.
type inputFlags struct {
	input   string
	gene    string
	noCache bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "transcript set JSON (required)")
	cmd.Flags().StringVarP(&f.gene, "gene", "g", "", "gene to lay out (prompted for when the input holds several)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("input")
}

// optionFlags binds the layout options to a command. Values are resolved
// in layers: pipeline defaults, then the config file, then flags the user
// actually set.
type optionFlags struct {
	opts pipeline.Options
}

func (f *optionFlags) register(cmd *cobra.Command) {
	f.opts = pipeline.DefaultOptions()
	fs := cmd.Flags()
	fs.IntVar(&f.opts.MinRegionSize, "min-region", f.opts.MinRegionSize, "minimum region size in bases")
	fs.IntVarP(&f.opts.MaxClusters, "max-clusters", "k", f.opts.MaxClusters, "largest number of clusters K")
	fs.Uint64Var(&f.opts.Seed, "seed", f.opts.Seed, "k-means seed (0: unseeded, results are not cached)")
	fs.IntVar(&f.opts.Restarts, "restarts", f.opts.Restarts, "k-means restarts per k")
	fs.StringVar(&f.opts.Strand, "strand", f.opts.Strand, "block scan direction: auto, forward, reverse")
	fs.IntVar(&f.opts.ScopeStart, "scope-start", 0, "drop transcripts ending before this coordinate")
	fs.IntVar(&f.opts.ScopeEnd, "scope-end", 0, "drop transcripts starting after this coordinate")
	fs.BoolVar(&f.opts.ShortLabels, "short-labels", false, "shorten long transcript labels")
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
}

// resolve returns the effective options for cmd.
func (f *optionFlags) resolve(cmd *cobra.Command, cfg *Config) pipeline.Options {
	opts := pipeline.DefaultOptions()
	if cfg != nil {
		cfg.Layout.apply(&opts)
	}
	fs := cmd.Flags()
	changed := func(name string) bool { return fs.Changed(name) }

	if changed("min-region") {
		opts.MinRegionSize = f.opts.MinRegionSize
	}
	if changed("max-clusters") {
		opts.MaxClusters = f.opts.MaxClusters
	}
	if changed("seed") {
		opts.Seed = f.opts.Seed
	}
	if changed("restarts") {
		opts.Restarts = f.opts.Restarts
	}
	if changed("strand") {
		opts.Strand = f.opts.Strand
	}
	if changed("short-labels") {
		opts.ShortLabels = f.opts.ShortLabels
	}
	opts.ScopeStart = f.opts.ScopeStart
	opts.ScopeEnd = f.opts.ScopeEnd
	opts.Refresh = f.opts.Refresh
	return opts
}

// strandCompletion completes the --strand flag.
func strandCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("strand", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.StrandAuto, pipeline.StrandForward, pipeline.StrandReverse}, cobra.ShellCompDirectiveNoFileComp
	})
}
