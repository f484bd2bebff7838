package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/chara/internal/ports"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show engine metrics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	report := engine.Report()
	cs := engine.CacheStats()

	pipeline := fmt.Sprintf("%soptimized%s", colorGreen, colorReset)
	if report.FallbackActive {
		pipeline = fmt.Sprintf("%slegacy fallback%s", colorYellow, colorReset)
	}

	fmt.Printf("%schara engine%s\n", colorBold, colorReset)
	fmt.Printf("  Pipeline:   %s\n", pipeline)
	fmt.Printf("  Patterns:   %d\n", report.PatternCount)
	for tier := ports.VariantCategory(0); tier < ports.CategoryCount; tier++ {
		fmt.Printf("    %-14s %d\n", tier.String()+":", report.TierDistribution[tier])
	}
	fmt.Printf("  Cache:      %d/%d entries, %.1f%% hit rate, ~%d bytes\n",
		cs.Size, cs.Capacity, cs.HitRate*100, cs.ApproxBytes)
	fmt.Printf("  Latency:    %.3f ms avg over %.0f calls/s\n",
		report.AvgLatencyMs, report.CallsPerSecond)
	return nil
}
