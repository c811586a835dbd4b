// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/bloodlink/donor-engine/internal/store"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Capture and triage end-user parse corrections",
	Long: `Feedback stores corrections users report on live parses. The engine
never reads feedback; verifiers review rows here and promote useful
ones to training examples with the examples command.`,
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Record a correction for a live parse",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFeedbackAdd,
}

func runFeedbackAdd(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	expectedPath, _ := cmd.Flags().GetString("expected")
	if expectedPath == "" {
		return fmt.Errorf("--expected is required: a YAML file with the corrected record")
	}
	data, err := os.ReadFile(expectedPath)
	if err != nil {
		return fmt.Errorf("reading corrected record: %w", err)
	}
	var expected types.ParsedRecord
	if err := yaml.Unmarshal(data, &expected); err != nil {
		return fmt.Errorf("parsing corrected record: %w", err)
	}

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	fb, err := s.AddFeedback(context.Background(), raw, expected)
	if err != nil {
		return err
	}
	fmt.Printf("feedback %d recorded\n", fb.ID)
	return nil
}

var feedbackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback, unreviewed first",
	RunE:  runFeedbackList,
}

func runFeedbackList(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	unreviewedOnly, _ := cmd.Flags().GetBool("unreviewed")
	items, err := s.ListFeedback(context.Background(), unreviewedOnly)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("No feedback stored.")
		return nil
	}
	for _, fb := range items {
		preview := fb.RawText
		if len(preview) > 40 {
			preview = preview[:37] + "..."
		}
		fmt.Printf("%-5d reviewed=%-5t  %q\n", fb.ID, fb.Reviewed, preview)
	}
	fmt.Printf("\n%d feedback row(s)\n", len(items))
	return nil
}

var feedbackReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Mark a feedback row as reviewed",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedbackReview,
}

func runFeedbackReview(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid feedback id %q", args[0])
	}

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.MarkFeedbackReviewed(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("feedback %d reviewed\n", id)
	return nil
}

func init() {
	feedbackAddCmd.Flags().String("text", "", "raw text instead of a file or stdin")
	feedbackAddCmd.Flags().String("expected", "", "YAML file with the corrected record")
	feedbackListCmd.Flags().Bool("unreviewed", false, "list only unreviewed feedback")

	feedbackCmd.AddCommand(feedbackAddCmd)
	feedbackCmd.AddCommand(feedbackListCmd)
	feedbackCmd.AddCommand(feedbackReviewCmd)

	rootCmd.AddCommand(feedbackCmd)
}
