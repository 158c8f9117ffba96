// SPDX-License-Identifier: MIT
package engineconfig_test

import (
	"testing"

	"github.com/katalvlaran/lvpra/internal/engineconfig"
)

func TestDefault_MatchesDocumentedConstants(t *testing.T) {
	cfg := engineconfig.Default()
	if cfg.UniqueTableInitialBuckets != engineconfig.DefaultUniqueTableInitialBuckets {
		t.Fatalf("UniqueTableInitialBuckets = %d, want %d", cfg.UniqueTableInitialBuckets, engineconfig.DefaultUniqueTableInitialBuckets)
	}
	if cfg.UniqueTableLoadFactor != engineconfig.DefaultUniqueTableLoadFactor {
		t.Fatalf("UniqueTableLoadFactor = %v, want %v", cfg.UniqueTableLoadFactor, engineconfig.DefaultUniqueTableLoadFactor)
	}
	if cfg.UniqueTableGrowthCap != engineconfig.DefaultUniqueTableGrowthCap {
		t.Fatalf("UniqueTableGrowthCap = %d, want %d", cfg.UniqueTableGrowthCap, engineconfig.DefaultUniqueTableGrowthCap)
	}
	if cfg.ComputeTableInitialBuckets != engineconfig.DefaultComputeTableInitialBuckets {
		t.Fatalf("ComputeTableInitialBuckets = %d, want %d", cfg.ComputeTableInitialBuckets, engineconfig.DefaultComputeTableInitialBuckets)
	}
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("LVPRA_UNIQUE_TABLE_INITIAL_BUCKETS", "2048")
	t.Setenv("LVPRA_UNIQUE_TABLE_LOAD_FACTOR", "0.5")

	cfg := engineconfig.Load("")
	if cfg.UniqueTableInitialBuckets != 2048 {
		t.Fatalf("UniqueTableInitialBuckets = %d, want 2048 (env override)", cfg.UniqueTableInitialBuckets)
	}
	if cfg.UniqueTableLoadFactor != 0.5 {
		t.Fatalf("UniqueTableLoadFactor = %v, want 0.5 (env override)", cfg.UniqueTableLoadFactor)
	}
	if cfg.ComputeTableInitialBuckets != engineconfig.DefaultComputeTableInitialBuckets {
		t.Fatalf("ComputeTableInitialBuckets = %d, want default %d (no override set)", cfg.ComputeTableInitialBuckets, engineconfig.DefaultComputeTableInitialBuckets)
	}
}

func TestLoad_MissingConfigFileFallsBackToDefaults(t *testing.T) {
	cfg := engineconfig.Load("/nonexistent/does-not-exist.yaml")
	if cfg.UniqueTableInitialBuckets != engineconfig.DefaultUniqueTableInitialBuckets {
		t.Fatalf("expected defaults when configPath is unreadable, got UniqueTableInitialBuckets=%d", cfg.UniqueTableInitialBuckets)
	}
}
