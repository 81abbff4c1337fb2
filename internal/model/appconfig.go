package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packing settings applied to new runs
	DefaultHeuristic     Heuristic `json:"default_heuristic" toml:"default_heuristic"`
	DefaultStrategy      Strategy  `json:"default_strategy" toml:"default_strategy"`
	DefaultOrder         Order     `json:"default_order" toml:"default_order"`
	DefaultAllowRotation bool      `json:"default_allow_rotation" toml:"default_allow_rotation"`
	DefaultSeed          int64     `json:"default_seed" toml:"default_seed"`

	// Bin size used for item-list formats (CSV, Excel, DXF) that carry none
	DefaultBinWidth  int `json:"default_bin_width" toml:"default_bin_width"`
	DefaultBinHeight int `json:"default_bin_height" toml:"default_bin_height"`

	// Application preferences
	OutputDir  string   `json:"output_dir" toml:"output_dir"`
	RecentRuns []string `json:"recent_runs" toml:"recent_runs"`
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultHeuristic:     defaults.Heuristic,
		DefaultStrategy:      defaults.Strategy,
		DefaultOrder:         defaults.Order,
		DefaultAllowRotation: defaults.AllowRotation,
		DefaultSeed:          defaults.Seed,
		DefaultBinWidth:      100,
		DefaultBinHeight:     100,
		OutputDir:            ".",
		RecentRuns:           []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Empty or unknown values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if h, ok := ParseHeuristic(string(c.DefaultHeuristic)); ok {
		s.Heuristic = h
	}
	if st, ok := ParseStrategy(string(c.DefaultStrategy)); ok {
		s.Strategy = st
	}
	if c.DefaultOrder != "" {
		if o, ok := ParseOrder(string(c.DefaultOrder)); ok {
			s.Order = o
		}
	}
	s.AllowRotation = c.DefaultAllowRotation
	s.Seed = c.DefaultSeed
}

// AddRecentRun records path as the most recent run, keeping at most ten
// entries and no duplicates.
func (c *AppConfig) AddRecentRun(path string) {
	runs := []string{path}
	for _, r := range c.RecentRuns {
		if r != path {
			runs = append(runs, r)
		}
	}
	if len(runs) > 10 {
		runs = runs[:10]
	}
	c.RecentRuns = runs
}
