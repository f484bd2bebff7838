package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/corey/chara/internal/ports"
)

// ANSI colors, disabled when stdout is not a terminal.
var (
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
	colorReset  = "\033[0m"
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		colorBold, colorGreen, colorYellow, colorDim, colorReset = "", "", "", "", ""
	}
}

// formatResults renders one title's results as "character series tier conf".
func formatResults(title string, results []ports.DetectionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s\n", colorBold, title, colorReset)
	if len(results) == 0 {
		fmt.Fprintf(&b, "  %sno characters detected%s\n", colorDim, colorReset)
		return b.String()
	}
	for _, r := range results {
		fmt.Fprintf(&b, "  %s%-20s%s %-16s %-12s %.2f\n",
			colorGreen, r.Character, colorReset, r.Series, r.CategoryName(), r.Confidence)
	}
	return b.String()
}
