package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
)

var (
	docTypeFlag string
	spaceFlag   string
	asyncFlag   bool
	fileFlag    string
	titleFlag   string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a generated document or a markdown file to Confluence",
	Long: `Generate a usage guide or change log and create a Confluence page from it.
With --file the markdown file is published as is under --title.

Examples:
  handoff publish -r octo/hello -b main --type usage_guide
  handoff publish -r octo/hello --type evolution_history --space ENG --async
  handoff publish -r octo/hello --file NOTES.md --title "Release notes"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, asyncFlag)
		if err != nil {
			return err
		}
		defer a.Close()

		var pub *models.Publication
		switch {
		case fileFlag != "":
			content, err := os.ReadFile(fileFlag)
			if err != nil {
				return err
			}
			pub, err = a.Publisher.PublishMarkdown(ctx, titleFlag, string(content))
			if err != nil {
				return err
			}

		case asyncFlag:
			job := models.PublishJob{
				RepositoryURL: repoFlag,
				Branch:        branchFlag,
				DocumentType:  models.DocumentType(docTypeFlag),
				SpaceKey:      spaceFlag,
			}
			if err := a.Publisher.Enqueue(ctx, job); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Queued %s for %s (%s)\n", docTypeFlag, repoFlag, branchFlag)
			return nil

		default:
			pub, err = a.Publisher.PublishDocument(ctx, repoFlag, branchFlag, models.DocumentType(docTypeFlag), spaceFlag)
			if err != nil {
				return err
			}
		}

		if formatFlag == formatJSON {
			return writeJSON(cmd.OutOrStdout(), pub)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created page %q (%s)\n%s\n", pub.Title, pub.PageID, pub.PageURL)
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVarP(&docTypeFlag, "type", "t", string(models.DocumentUsageGuide), "Document type (usage_guide, evolution_history)")
	publishCmd.Flags().StringVar(&spaceFlag, "space", "", "Target space, defaults to CONFLUENCE_SPACE_KEY")
	publishCmd.Flags().BoolVar(&asyncFlag, "async", false, "Queue the job on RabbitMQ instead of publishing now")
	publishCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Publish this markdown file instead of generating a document")
	publishCmd.Flags().StringVar(&titleFlag, "title", "", "Page title, required with --file")
	rootCmd.AddCommand(publishCmd)
}
