package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/contentstudio/asset-library/pkg/scoring"
)

var (
	scoreTitle       string
	scoreDescription string
)

var scoreCmd = &cobra.Command{
	Use:   "score [content]",
	Short: "Request AI scores for a piece of content",
	Long: `Request SEO and grammar scores for a piece of content. Content is taken
from the first argument, or from stdin when no argument is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string
		if len(args) == 1 {
			content = args[0]
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}

		body := map[string]string{
			"content":     content,
			"title":       scoreTitle,
			"description": scoreDescription,
		}
		var result scoring.ScoreResult
		if err := newClient().postJSON(scoring.ScoresPath, body, &result); err != nil {
			return err
		}

		if outputFmt() != "table" {
			return printOutput(result)
		}
		fmt.Printf("SEO score:     %.1f\n", result.SEOScore)
		fmt.Printf("Grammar score: %.1f\n", result.GrammarScore)
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreTitle, "title", "", "Title to include in the scoring request")
	scoreCmd.Flags().StringVar(&scoreDescription, "description", "", "Description to include in the scoring request")
}
