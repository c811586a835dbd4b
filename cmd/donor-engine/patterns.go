// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bloodlink/donor-engine/internal/store"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect and toggle mined extraction patterns",
	Long: `Patterns lists the rules the miner has scored and lets a verifier
enable or disable individual rules. A manual toggle survives
subsequent mining passes until cleared.`,
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mined patterns with their effectiveness",
	RunE:  runPatternsList,
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	field, _ := cmd.Flags().GetString("field")
	family, _ := cmd.Flags().GetString("family")
	enabledOnly, _ := cmd.Flags().GetBool("enabled")

	patterns, err := s.ListPatterns(context.Background(), store.PatternFilter{
		Field:       field,
		Family:      types.PatternType(family),
		EnabledOnly: enabledOnly,
	})
	if err != nil {
		return err
	}

	if len(patterns) == 0 {
		fmt.Println("No patterns stored. Run mine first.")
		return nil
	}

	fmt.Printf("%-11s %-12s %-6s %-6s %-8s %s\n",
		"family", "field", "conf", "used", "enabled", "pattern")
	for _, p := range patterns {
		body := p.Pattern
		if len(body) > 48 {
			body = body[:45] + "..."
		}
		fmt.Printf("%-11s %-12s %-6.2f %-6d %-8t %s\n",
			p.PatternType, p.Field, p.Confidence, p.UsageCount, p.IsEnabled, body)
	}
	fmt.Printf("\n%d pattern(s)\n", len(patterns))
	return nil
}

var patternsEnableCmd = &cobra.Command{
	Use:   "enable <family> <field> <pattern>",
	Short: "Manually enable a pattern",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return togglePattern(cmd, args, true)
	},
}

var patternsDisableCmd = &cobra.Command{
	Use:   "disable <family> <field> <pattern>",
	Short: "Manually disable a pattern",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return togglePattern(cmd, args, false)
	},
}

func togglePattern(cmd *cobra.Command, args []string, enabled bool) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	family, field, pattern := types.PatternType(args[0]), args[1], args[2]
	if err := s.SetPatternEnabled(context.Background(), family, pattern, field, enabled); err != nil {
		return err
	}
	fmt.Printf("pattern (%s, %s) enabled=%t\n", family, field, enabled)
	return nil
}

var patternsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export mined patterns to YAML or JSON",
	RunE:  runPatternsExport,
}

func runPatternsExport(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	format, _ := cmd.Flags().GetString("format")
	ctx := context.Background()

	var path string
	switch format {
	case "yaml", "":
		path, err = s.ExportYAML(ctx, store.PatternFilter{})
	case "json":
		path, err = s.ExportJSON(ctx, store.PatternFilter{})
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

func init() {
	patternsListCmd.Flags().String("field", "", "filter by target field")
	patternsListCmd.Flags().String("family", "", "filter by rule family: regex, positional, keyword")
	patternsListCmd.Flags().Bool("enabled", false, "list only enabled patterns")
	patternsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsEnableCmd)
	patternsCmd.AddCommand(patternsDisableCmd)
	patternsCmd.AddCommand(patternsExportCmd)

	rootCmd.AddCommand(patternsCmd)
}
