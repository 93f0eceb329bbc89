package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docquery/docquery/internal/core/domain"
)

var (
	searchFile  string
	searchLimit int
	searchJSON  bool
)

// Styles for terminal output. Disabled when stdout is not a TTY.
var (
	resultTitleStyle = lipgloss.NewStyle().Bold(true)
	resultScoreStyle = lipgloss.NewStyle().Faint(true)
	resultMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the documentation corpus",
	Long: `Performs semantic search over the indexed documentation and prints
the top matching sections ranked by similarity.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "restrict results to one documentation file")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchResults, "maximum number of results (1-20)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	results := queryService.Search(cmd.Context(), query, searchFile, searchLimit)

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	for i := range results {
		title := fmt.Sprintf("%s > %s", results[i].Filename, results[i].Heading)
		score := fmt.Sprintf("(%.4f)", results[i].Score)

		cmd.Printf("  [%d] %s %s\n", i+1, render(resultTitleStyle, title), render(resultScoreStyle, score))
		if results[i].SourceURL != "" {
			cmd.Printf("      %s\n", render(resultMetaStyle, results[i].SourceURL))
		}
		cmd.Printf("      %s\n", firstLine(results[i].Content))
		cmd.Println()
	}

	return nil
}

// firstLine returns the first non-empty line of content for compact
// single-line previews.
func firstLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if line != "" {
			return line
		}
	}
	return ""
}
