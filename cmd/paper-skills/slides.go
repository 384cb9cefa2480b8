package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JS2IIU-MH/agent-skills/internal/deck"
)

var slidesCmd = &cobra.Command{
	Use:   "slides DATA_FILE OUTPUT",
	Short: "Generate a .pptx deck from a slide-data file",
	Long: `Slides reads a JSON or YAML slide description ({"slides": [{"title",
"content", "notes", "layout_index"}]}) and writes a presentation. Without an
explicit layout_index the first slide uses the title layout and the rest the
title-and-content layout; out-of-range indexes fall back to layout 0.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		template, _ := cmd.Flags().GetString("template")

		sd, err := deck.LoadSlideData(args[0])
		if err != nil {
			return err
		}
		if err := deck.BuildFromData(sd, template, args[1]); err != nil {
			return err
		}
		fmt.Printf("Presentation saved to: %s\n", args[1])
		return nil
	},
}

func init() {
	slidesCmd.Flags().String("template", "", "path to a .pptx template")

	rootCmd.AddCommand(slidesCmd)
}
