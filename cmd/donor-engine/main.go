// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the donor-engine CLI: parsing
// free-form donor submissions into normalized records, managing the
// verified example corpus, and mining extraction patterns from it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bloodlink/donor-engine/internal/extract"
	"github.com/bloodlink/donor-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the donor-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "donor-engine",
	Short: "Extraction and pattern-learning engine for donor submissions",
	Long: `donor-engine converts free-form, inconsistently formatted blood donor
submissions into normalized records, and learns which extraction
heuristics work best from a corpus of human-verified examples.

Each concern is a subcommand: parse extracts records from text,
examples manages the verified corpus, mine scores extraction rules
against it, patterns inspects and toggles the mined rules, and
feedback captures end-user corrections.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./donor-engine.yaml or ~/.config/donor-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "base directory for persistent data (default: data)")
	rootCmd.PersistentFlags().Bool("trace", false, "print the extractor reasoning trail to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("donor-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "donor-engine"))
		}
	}

	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("store.max_results", 50)

	viper.SetEnvPrefix("DONOR_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// storeConfig resolves the store settings from flags and config.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	return types.StoreConfig{
		DataDir:    dataDir,
		MaxResults: viper.GetInt("store.max_results"),
	}
}

// newParser builds the extraction parser, wiring a stderr tracer when
// --trace or engine.trace is set.
func newParser(cmd *cobra.Command) *extract.Parser {
	trace, _ := cmd.Flags().GetBool("trace")
	if trace || viper.GetBool("engine.trace") {
		return extract.NewParser(extract.WithTracer(extract.NewWriterTracer(os.Stderr)))
	}
	return extract.NewParser()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
