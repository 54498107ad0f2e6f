package trialctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/spf13/cobra"
)

func (a *app) evidenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Manage evidence documents",
	}
	cmd.AddCommand(
		a.evidenceUploadCommand(),
		a.evidenceListCommand(),
		a.evidenceGetCommand(),
		a.evidenceDeleteCommand(),
	)
	return cmd
}

func (a *app) evidenceUploadCommand() *cobra.Command {
	var side, title string
	cmd := &cobra.Command{
		Use:     "upload <case-id> <file>",
		Short:   "Upload a document for one side",
		Example: `  trialctl evidence upload CASE_ID contract.pdf --side A`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.UploadDocument(ctx, &trialv1.UploadDocumentRequest{
					CaseID:   args[0],
					Side:     side,
					Title:    title,
					FileName: filepath.Base(args[1]),
					Content:  content,
				})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Document, func(w io.Writer) error {
					return writeDocumentTable(w, []*trialv1.Document{resp.Document})
				})
			})
		},
	}
	cmd.Flags().StringVar(&side, "side", "", "side the evidence supports: A or B")
	cmd.Flags().StringVar(&title, "title", "", "document title (defaults to the file name)")
	_ = cmd.MarkFlagRequired("side")
	return cmd
}

func (a *app) evidenceListCommand() *cobra.Command {
	var side string
	cmd := &cobra.Command{
		Use:   "list <case-id>",
		Short: "List evidence for a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.ListDocuments(ctx, &trialv1.ListDocumentsRequest{CaseID: args[0], Side: side})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Documents, func(w io.Writer) error {
					return writeDocumentTable(w, resp.Documents)
				})
			})
		},
	}
	cmd.Flags().StringVar(&side, "side", "", "only list one side: A or B")
	return cmd
}

func (a *app) evidenceGetCommand() *cobra.Command {
	var includeText bool
	cmd := &cobra.Command{
		Use:   "get <case-id> <document-id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.GetDocument(ctx, &trialv1.GetDocumentRequest{
					CaseID:      args[0],
					DocumentID:  args[1],
					IncludeText: includeText,
				})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Document, func(w io.Writer) error {
					return writeDocument(w, resp.Document)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&includeText, "include-text", false, "print the full extracted text instead of an excerpt")
	return cmd
}

func (a *app) evidenceDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <case-id> <document-id>",
		Short: "Remove a document from a case that is not finalized",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				if _, err := client.DeleteDocument(ctx, &trialv1.DeleteDocumentRequest{CaseID: args[0], DocumentID: args[1]}); err != nil {
					return err
				}
				_, err := fmt.Fprintf(writer(cmd), "deleted document %s\n", args[1])
				return err
			})
		},
	}
}
