// SPDX-License-Identifier: MIT
// Package engineconfig loads performance-tuning knobs for the unique and
// compute tables. These knobs never change analysis semantics — only
// memory/time tradeoffs — per §9's note that the unique table's capacity
// growth schedule is "a tuning choice." Defaults match §4.2 of the design
// notes exactly; overrides come from the environment (LVPRA_ prefix) or
// an optional YAML file, via github.com/spf13/viper, the way kegliz-qplay
// wires its own default-plus-override configuration surface.
package engineconfig

import (
	"strings"

	"github.com/spf13/viper"
)

// EngineConfig bundles the tunable knobs for uniquetable/computetable.
type EngineConfig struct {
	// UniqueTableInitialBuckets is the starting bucket count.
	UniqueTableInitialBuckets int
	// UniqueTableLoadFactor triggers growth once buckets are this full.
	UniqueTableLoadFactor float64
	// UniqueTableGrowthCap is the bucket count above which the growth
	// step drops from 2x to +1/8 (uniquetable.Table's nextCapacity) to
	// dampen peak memory.
	UniqueTableGrowthCap int
	// ComputeTableInitialBuckets is the starting size of the Apply
	// memoization table.
	ComputeTableInitialBuckets int
}

// Defaults are the single source of truth for zero-value behavior,
// mirroring matrix/options.go's DefaultXxx constant convention.
const (
	DefaultUniqueTableInitialBuckets  = 1 << 10
	DefaultUniqueTableLoadFactor      = 0.75
	DefaultUniqueTableGrowthCap       = 1 << 27 // ~1.3e8, the "10^8 buckets" threshold of §4.2
	DefaultComputeTableInitialBuckets = 1 << 12
)

// Default returns the built-in tuning defaults, used when no override
// source is configured.
func Default() *EngineConfig {
	return &EngineConfig{
		UniqueTableInitialBuckets:  DefaultUniqueTableInitialBuckets,
		UniqueTableLoadFactor:      DefaultUniqueTableLoadFactor,
		UniqueTableGrowthCap:       DefaultUniqueTableGrowthCap,
		ComputeTableInitialBuckets: DefaultComputeTableInitialBuckets,
	}
}

// Load reads overrides from the environment (LVPRA_UNIQUE_TABLE_INITIAL_BUCKETS,
// etc.) and, if configPath is non-empty, from a YAML file, layered over
// Default(). A missing or unreadable configPath is not an error: Load
// falls back to env-plus-defaults, since this is a tuning surface, not a
// required input.
func Load(configPath string) *EngineConfig {
	v := viper.New()
	v.SetEnvPrefix("LVPRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("unique_table.initial_buckets", def.UniqueTableInitialBuckets)
	v.SetDefault("unique_table.load_factor", def.UniqueTableLoadFactor)
	v.SetDefault("unique_table.growth_cap", def.UniqueTableGrowthCap)
	v.SetDefault("compute_table.initial_buckets", def.ComputeTableInitialBuckets)

	if configPath != "" {
		v.SetConfigFile(configPath)
		_ = v.ReadInConfig() // best-effort: tuning knobs fall back to defaults
	}

	return &EngineConfig{
		UniqueTableInitialBuckets:  v.GetInt("unique_table.initial_buckets"),
		UniqueTableLoadFactor:      v.GetFloat64("unique_table.load_factor"),
		UniqueTableGrowthCap:       v.GetInt("unique_table.growth_cap"),
		ComputeTableInitialBuckets: v.GetInt("compute_table.initial_buckets"),
	}
}
