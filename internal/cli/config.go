package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clusterview/pkg/errors"
	"github.com/matzehuels/clusterview/pkg/pipeline"
)

// Config is the clusterview config file. Every layout field is optional;
// unset fields keep the pipeline default.
//
//	[layout]
//	min_region_size = 50
//	max_clusters = 6
//	seed = 7
//	strand = "auto"
//
//	[cache]
//	redis = "redis://localhost:6379/0"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig holds defaults for the layout options.
type LayoutConfig struct {
	MinRegionSize *int    `toml:"min_region_size"`
	MaxClusters   *int    `toml:"max_clusters"`
	Seed          *uint64 `toml:"seed"`
	Restarts      *int    `toml:"restarts"`
	Strand        *string `toml:"strand"`
	ShortLabels   *bool   `toml:"short_labels"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	Redis    string `toml:"redis"`
}

// DefaultConfig returns an empty config: pipeline defaults and the file cache.
func DefaultConfig() *Config {
	return &Config{}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing
// explicit one is. Unknown keys are rejected so that typos are not
// silently ignored.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read config %s", path)
	}
	return parseConfig(string(data), path)
}

func parseConfig(data, path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Configuration("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Layout.Strand != nil {
		if err := pipeline.ValidateStrand(*cfg.Layout.Strand); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// apply overlays the configured layout defaults on opts.
func (l LayoutConfig) apply(opts *pipeline.Options) {
	if l.MinRegionSize != nil {
		opts.MinRegionSize = *l.MinRegionSize
	}
	if l.MaxClusters != nil {
		opts.MaxClusters = *l.MaxClusters
	}
	if l.Seed != nil {
		opts.Seed = *l.Seed
	}
	if l.Restarts != nil {
		opts.Restarts = *l.Restarts
	}
	if l.Strand != nil {
		opts.Strand = *l.Strand
	}
	if l.ShortLabels != nil {
		opts.ShortLabels = *l.ShortLabels
	}
}
