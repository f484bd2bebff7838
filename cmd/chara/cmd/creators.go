package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/chara/internal/ports"
)

var (
	flagMapConfidence float64
	flagMapSource     string
)

var creatorsCmd = &cobra.Command{
	Use:   "creators",
	Short: "Creator-to-character mapping table",
	Long:  "Append-only mappings from uploader/creator IDs to the characters they\nfeature. Advisory data for host-application heuristics; the detector\nitself never reads it.",
}

var creatorsAddCmd = &cobra.Command{
	Use:   "add <creator-id> <character>",
	Short: "Record a creator mapping",
	Args:  cobra.ExactArgs(2),
	RunE:  runCreatorsAdd,
}

var creatorsListCmd = &cobra.Command{
	Use:   "list <creator-id>",
	Short: "List a creator's mappings",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreatorsList,
}

func init() {
	creatorsAddCmd.Flags().Float64Var(&flagMapConfidence, "confidence", 1.0, "mapping confidence (0,1]")
	creatorsAddCmd.Flags().StringVar(&flagMapSource, "source", "manual", "mapping source: manual or auto")
	creatorsCmd.AddCommand(creatorsAddCmd)
	creatorsCmd.AddCommand(creatorsListCmd)
}

func runCreatorsAdd(cmd *cobra.Command, args []string) error {
	if flagMapSource != "manual" && flagMapSource != "auto" {
		return fmt.Errorf("bad --source %q: want manual or auto", flagMapSource)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.AppendCreatorMapping(ports.CreatorMapping{
		CreatorID:  args[0],
		Character:  args[1],
		Confidence: flagMapConfidence,
		Source:     flagMapSource,
		CreatedAt:  time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s✓%s %s → %s (%s, %.2f)\n", colorGreen, colorReset, args[0], args[1], flagMapSource, flagMapConfidence)
	return nil
}

func runCreatorsList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	mappings, err := store.CreatorMappings(args[0])
	if err != nil {
		return err
	}
	if len(mappings) == 0 {
		fmt.Printf("%sno mappings for %s%s\n", colorDim, args[0], colorReset)
		return nil
	}
	for _, m := range mappings {
		ts := time.Unix(m.CreatedAt, 0).Format("2006-01-02 15:04")
		fmt.Printf("  %s%-20s%s %-8s %.2f  %s%s%s\n",
			colorGreen, m.Character, colorReset, m.Source, m.Confidence, colorDim, ts, colorReset)
	}
	return nil
}
