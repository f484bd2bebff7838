package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagWeight   float64
	flagHints    []string
	flagVariants []string
)

var addCmd = &cobra.Command{
	Use:   "add <series> <name>",
	Short: "Add a character to the roster",
	Long: "Registers a character and persists the updated roster to the database.\n" +
		"Variants are given as category=alias, e.g. --variant exact=\"Hu Tao\".",
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Float64Var(&flagWeight, "weight", 0.9, "detection weight (0,1]")
	addCmd.Flags().StringArrayVar(&flagHints, "hint", nil, "context hint keyword (repeatable)")
	addCmd.Flags().StringArrayVar(&flagVariants, "variant", nil, "category=alias (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	series, name := args[0], args[1]

	variants := make(map[string][]string)
	for _, v := range flagVariants {
		cat, alias, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("bad --variant %q: want category=alias", v)
		}
		variants[cat] = append(variants[cat], alias)
	}

	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := engine.AddCharacter(series, name, flagWeight, flagHints, variants); err != nil {
		return err
	}
	engine.WaitRebuilds()

	if err := store.SaveRoster(engine.Export()); err != nil {
		return err
	}

	fmt.Printf("%s✓%s added %s/%s (%d variants)\n", colorGreen, colorReset, series, name, len(flagVariants))
	return nil
}
