package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a character from the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	if !engine.RemoveCharacter(args[0]) {
		return fmt.Errorf("no character named %q", args[0])
	}
	engine.WaitRebuilds()

	if err := store.SaveRoster(engine.Export()); err != nil {
		return err
	}

	fmt.Printf("%s✓%s removed %s\n", colorGreen, colorReset, args[0])
	return nil
}
