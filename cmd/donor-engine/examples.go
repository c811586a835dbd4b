// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/bloodlink/donor-engine/internal/store"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Manage the verified training example corpus",
	Long: `Examples manages the corpus of human-verified (raw text, expected
record) pairs that pattern mining learns from. Adding an example runs
the current engine over the raw text and caches its output alongside
the verified record; recompute refreshes those caches after engine
changes.`,
}

var examplesAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a verified example from raw text and an expected record",
	Long: `Add stores a training example. Raw text comes from a file, --text, or
stdin; the verified record comes from the YAML file named by
--expected. The engine's current parse of the raw text is cached with
the example, and the example counts as correct when more than 70% of
its fields match the verified record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamplesAdd,
}

func runExamplesAdd(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	expectedPath, _ := cmd.Flags().GetString("expected")
	if expectedPath == "" {
		return fmt.Errorf("--expected is required: a YAML file with the verified record")
	}
	data, err := os.ReadFile(expectedPath)
	if err != nil {
		return fmt.Errorf("reading expected record: %w", err)
	}
	var expected types.ParsedRecord
	if err := yaml.Unmarshal(data, &expected); err != nil {
		return fmt.Errorf("parsing expected record: %w", err)
	}

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	parsed := newParser(cmd).ParseOne(raw)
	ex, err := s.AddExample(context.Background(), raw, expected, parsed)
	if err != nil {
		return err
	}

	fmt.Printf("example %d added: confidence %.2f, correct: %t\n", ex.ID, ex.Confidence, ex.IsCorrect)
	return nil
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored training examples",
	RunE:  runExamplesList,
}

func runExamplesList(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	onlyCorrect, _ := cmd.Flags().GetBool("correct")
	examples, err := s.ListExamples(context.Background(), onlyCorrect)
	if err != nil {
		return err
	}

	if len(examples) == 0 {
		fmt.Println("No examples stored.")
		return nil
	}
	for _, ex := range examples {
		preview := ex.RawText
		if len(preview) > 40 {
			preview = preview[:37] + "..."
		}
		fmt.Printf("%-5d %.2f  correct=%-5t  %q\n", ex.ID, ex.Confidence, ex.IsCorrect, preview)
	}
	fmt.Printf("\n%d example(s)\n", len(examples))
	return nil
}

var examplesRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Re-parse all examples with the current engine",
	Long: `Recompute runs the current engine over every stored raw text and
refreshes the cached parse, confidence, and correctness. Run it after
changing extraction heuristics so mining sees up-to-date correctness.`,
	RunE: runExamplesRecompute,
}

func runExamplesRecompute(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	parser := newParser(cmd)
	_, err = s.RecomputeExamples(context.Background(), parser.ParseOne, os.Stdout)
	return err
}

func init() {
	examplesAddCmd.Flags().String("text", "", "raw text instead of a file or stdin")
	examplesAddCmd.Flags().String("expected", "", "YAML file with the verified expected record")
	examplesListCmd.Flags().Bool("correct", false, "list only correctly parsed examples")

	examplesCmd.AddCommand(examplesAddCmd)
	examplesCmd.AddCommand(examplesListCmd)
	examplesCmd.AddCommand(examplesRecomputeCmd)

	rootCmd.AddCommand(examplesCmd)
}
