package cli

import (
	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Inspect the documentation corpus",
	Long:  `List indexed documentation files and inspect their heading structure.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documentation files",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsHeadingsCmd = &cobra.Command{
	Use:   "headings [filename]",
	Short: "Show the heading structure of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsHeadings,
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsHeadingsCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	docs := queryService.ListDocuments(cmd.Context())

	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	for _, name := range docs {
		cmd.Printf("  %s\n", name)
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentsHeadings(cmd *cobra.Command, args []string) error {
	filename := args[0]
	headings := queryService.DocumentHeadings(cmd.Context(), filename)

	if len(headings) == 0 {
		cmd.Printf("No headings found for %s.\n", filename)
		return nil
	}

	cmd.Printf("Headings in %s:\n\n", filename)
	for _, h := range headings {
		for i := 1; i < h.Level; i++ {
			cmd.Print("  ")
		}
		cmd.Printf("- %s\n", h.Title)
	}
	return nil
}
