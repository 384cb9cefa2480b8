package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JS2IIU-MH/agent-skills/internal/deck"
	"github.com/JS2IIU-MH/agent-skills/internal/httputil"
	"github.com/JS2IIU-MH/agent-skills/internal/websearch"
	"github.com/JS2IIU-MH/agent-skills/pkg/types"
)

// defaultPrompt is used when neither an argument nor a prompt file is given.
const defaultPrompt = "生成AIの2025年のトレンドについてプレゼン資料を作ってください。"

// webSearchTimeout bounds the research request during assembly.
const webSearchTimeout = 10 * time.Second

var presentCmd = &cobra.Command{
	Use:   "present [PROMPT]",
	Short: "Research a prompt and assemble a .pptx presentation",
	Long: `Present runs a web search for the prompt and assembles a slide deck:
title slide, table of contents, executive summary, one slide per research
finding, conclusion, and references. An optional .pptx template is used when
it loads; {{TITLE}}, {{DATE}}, {{LANG}}, {{SUBTITLE}} and {{AUTHOR}}
placeholders in the template are filled in.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresent,
}

func init() {
	presentCmd.Flags().String("lang", "", `language tag: "ja"-prefixed tags select Japanese labels (default "ja")`)
	presentCmd.Flags().Int("slides", 10, "approximate slide count (advisory only)")
	presentCmd.Flags().String("template", "", "path to a .pptx template")
	presentCmd.Flags().String("output-dir", "", `output directory (default "outputs")`)
	presentCmd.Flags().String("filename", "", "output filename (default presentation_{timestamp}.pptx)")
	presentCmd.Flags().String("author", "", "value for the AUTHOR template placeholder")
	presentCmd.Flags().String("prompt-file", "", "read the prompt from a plain-text file")

	rootCmd.AddCommand(presentCmd)
}

func runPresent(cmd *cobra.Command, args []string) error {
	prompt := ""
	if len(args) > 0 {
		prompt = args[0]
	}
	if promptFile, _ := cmd.Flags().GetString("prompt-file"); prompt == "" && promptFile != "" {
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return fmt.Errorf("reading prompt file: %w", err)
		}
		prompt = strings.TrimSpace(string(data))
	}
	if prompt == "" {
		prompt = defaultPrompt
	}

	cfg := types.DeckConfig{
		OutputDir:    stringSetting(cmd, "output-dir", "deck.output_dir"),
		TemplatePath: stringSetting(cmd, "template", "deck.template"),
		Author:       stringSetting(cmd, "author", "deck.author"),
		Language:     stringSetting(cmd, "lang", "deck.lang"),
	}
	slides, _ := cmd.Flags().GetInt("slides")
	filename, _ := cmd.Flags().GetString("filename")

	assembler := &deck.Assembler{
		Searcher: websearch.WithFallback{
			Primary:  &websearch.DuckDuckGo{Client: httputil.NewClient(webSearchTimeout)},
			Fallback: websearch.Canned{},
		},
		Config: cfg,
		Out:    os.Stderr,
	}

	path, err := assembler.Assemble(cmd.Context(), prompt, slides, filename)
	if err != nil {
		return err
	}
	fmt.Printf("Generated: %s\n", path)
	return nil
}

// stringSetting reads a flag value, falling back to the config file key
// when the flag is empty.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return viper.GetString(key)
}
