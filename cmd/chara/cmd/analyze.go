package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/corey/chara/internal/ports"
)

var (
	flagJSON bool
	flagJobs int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [title...]",
	Short: "Detect characters in titles",
	Long:  "Analyzes each title argument, or stdin lines when no arguments are given.\nWith --jobs > 1, titles are chunked across a bounded worker pool.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "JSON output")
	analyzeCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 1, "parallel workers for batch input")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	engine, store, err := buildEngine(true)
	if err != nil {
		return err
	}
	defer store.Close()

	titles := args
	if len(titles) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			titles = append(titles, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(titles) == 0 {
		return nil
	}

	// The engine itself has no batching concept — chunking across a
	// bounded pool is the caller's job, done here with errgroup.
	results := make([][]ports.DetectionResult, len(titles))
	if flagJobs > 1 {
		var g errgroup.Group
		g.SetLimit(flagJobs)
		for i, title := range titles {
			i, title := i, title
			g.Go(func() error {
				results[i] = engine.Analyze(title)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, title := range titles {
			results[i] = engine.Analyze(title)
		}
	}

	if flagJSON {
		return printJSON(titles, results)
	}
	for i, title := range titles {
		fmt.Print(formatResults(title, results[i]))
	}
	return nil
}

// jsonResult is the machine-readable per-title output shape.
type jsonResult struct {
	Title      string          `json:"title"`
	Characters []jsonCharacter `json:"characters"`
}

type jsonCharacter struct {
	Character  string  `json:"character"`
	Series     string  `json:"series"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

func printJSON(titles []string, results [][]ports.DetectionResult) error {
	out := make([]jsonResult, len(titles))
	for i, title := range titles {
		jr := jsonResult{Title: title, Characters: []jsonCharacter{}}
		for _, r := range results[i] {
			jr.Characters = append(jr.Characters, jsonCharacter{
				Character:  r.Character,
				Series:     r.Series,
				Category:   r.CategoryName(),
				Confidence: r.Confidence,
			})
		}
		out[i] = jr
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
