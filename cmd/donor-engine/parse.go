// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/bloodlink/donor-engine/internal/extract"
	"github.com/bloodlink/donor-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Extract normalized donor records from free-form text",
	Long: `Parse reads a donor submission from a file, --text, or stdin and
extracts a normalized record with a confidence score. With --multi the
input is segmented on blank lines and each segment is parsed
independently; segments yielding neither a name nor a blood group are
dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

// parsedOutput is one record with its confidence, as printed.
type parsedOutput struct {
	types.ParsedRecord `yaml:",inline"`
	Confidence         float64 `json:"confidence" yaml:"confidence"`
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty input: provide a file, --text, or stdin")
	}

	parser := newParser(cmd)
	multi, _ := cmd.Flags().GetBool("multi")

	var records []types.ParsedRecord
	if multi {
		records = parser.ParseMany(text)
	} else {
		records = []types.ParsedRecord{parser.ParseOne(text)}
	}

	out := make([]parsedOutput, len(records))
	for i, rec := range records {
		out[i] = parsedOutput{ParsedRecord: rec, Confidence: extract.Confidence(rec)}
	}

	format, _ := cmd.Flags().GetString("format")
	return writeRecords(os.Stdout, out, format)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func writeRecords(w io.Writer, records []parsedOutput, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "table", "":
		if len(records) == 0 {
			fmt.Fprintln(w, "No records extracted.")
			return nil
		}
		for i, r := range records {
			if len(records) > 1 {
				fmt.Fprintf(w, "--- record %d ---\n", i+1)
			}
			fmt.Fprintf(w, "%-12s %s\n", "name:", r.Name)
			fmt.Fprintf(w, "%-12s %s\n", "blood group:", r.BloodGroup)
			fmt.Fprintf(w, "%-12s %s\n", "phone:", r.Phone)
			fmt.Fprintf(w, "%-12s %s\n", "date:", r.Date)
			fmt.Fprintf(w, "%-12s %s\n", "batch:", r.Batch)
			fmt.Fprintf(w, "%-12s %s\n", "hospital:", r.Hospital)
			fmt.Fprintf(w, "%-12s %s\n", "hall:", r.HallName)
			fmt.Fprintf(w, "%-12s %s\n", "referrer:", r.Referrer)
			fmt.Fprintf(w, "%-12s %.2f\n", "confidence:", r.Confidence)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or table", format)
	}
}

func init() {
	parseCmd.Flags().String("text", "", "parse this text instead of a file or stdin")
	parseCmd.Flags().Bool("multi", false, "segment input on blank lines and parse each record")
	parseCmd.Flags().String("format", "table", "output format: json, yaml, or table")

	rootCmd.AddCommand(parseCmd)
}
