// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-skills CLI: literature
// search against arXiv, PubMed and J-STAGE, web search, and presentation
// assembly.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JS2IIU-MH/agent-skills/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, else the named secret,
// else "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the paper-skills CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-skills",
	Short: "Literature search and presentation-assembly skills",
	Long: `paper-skills bundles small research automation skills: it queries
literature APIs (arXiv, PubMed, J-STAGE) and a web search engine, normalizes
the results into one record schema, and assembles research findings into a
.pptx slide deck from an optional template.

Search results are printed as JSON; provider failures become an error payload
on stdout rather than a process failure.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-skills.yaml or ~/.config/paper-skills/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-skills")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-skills"))
		}
	}

	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.user_agent", "paper-skills/0.1")
	viper.SetDefault("deck.output_dir", "outputs")
	viper.SetDefault("deck.lang", "ja")

	viper.SetEnvPrefix("PAPER_SKILLS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
