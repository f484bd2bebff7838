package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster as JSON",
	Long:  "Writes the current roster document to stdout (or --out). Re-loading the\nexport reproduces the identical character/category/variant set.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	doc := engine.Export()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if flagExportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOut, data, 0644); err != nil {
		return err
	}
	fmt.Printf("%s✓%s exported to %s\n", colorGreen, colorReset, flagExportOut)
	return nil
}
