package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/chara/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig(flagConfig)
	if err != nil {
		return err
	}

	rosterSrc := "embedded default"
	if flagRoster != "" {
		rosterSrc = flagRoster
	}

	fmt.Printf("%schara config%s\n", colorBold, colorReset)
	fmt.Printf("  Roster:          %s\n", rosterSrc)
	fmt.Printf("  DB:              %s\n", dbPath())
	fmt.Printf("  Cache capacity:  %d\n", cfg.CacheCapacity)
	fmt.Printf("  Threshold:       %.2f\n", cfg.ConfidenceThreshold)
	fmt.Printf("  Length bonus:    %.2f\n", cfg.LengthBonus)
	fmt.Printf("  Hint bonus:      %.2f (cap %.2f)\n", cfg.HintBonus, cfg.HintBonusCap)
	fmt.Printf("  Jobs:            %d\n", cfg.Jobs)
	return nil
}
