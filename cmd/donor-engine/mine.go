// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bloodlink/donor-engine/internal/mine"
	"github.com/bloodlink/donor-engine/internal/store"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine extraction patterns from the verified corpus",
	Long: `Mine scores the engine's rule catalogue (regex shapes, the positional
two-name rule, and field-label keywords) against every correctly
parsed training example, then upserts the results into the pattern
store keyed by (family, pattern, field). Re-running on an unchanged
corpus is idempotent. Mined patterns are an audit artifact; they do
not change the extraction cascades.`,
	RunE: runMine,
}

func runMine(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	patterns, stats, err := mine.Run(ctx, s.CorrectExamples, s.UpsertPatterns)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("examples used:       %d\n", stats.ExamplesUsed)
	fmt.Printf("patterns learned:    %d (regex %d, positional %d, keyword %d)\n",
		stats.PatternsLearned, stats.RegexPatterns, stats.PositionalPatterns, stats.KeywordPatterns)
	fmt.Printf("mean confidence:     %.2f\n", stats.MeanConfidence)

	enabled := 0
	for _, p := range patterns {
		if p.IsEnabled {
			enabled++
		}
	}
	fmt.Printf("enabled:             %d\n", enabled)
	return nil
}

func init() {
	mineCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(mineCmd)
}
