package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Result cache operations",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached results",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	engine.ClearCache()
	fmt.Printf("%s✓%s cache cleared\n", colorGreen, colorReset)
	return nil
}
