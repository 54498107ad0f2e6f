package trialctl

import (
	"context"
	"fmt"
	"io"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/spf13/cobra"
)

func (a *app) caseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Create, inspect and finalize cases",
	}
	cmd.AddCommand(
		a.caseCreateCommand(),
		a.caseGetCommand(),
		a.caseListCommand(),
		a.caseUpdateCommand(),
		a.caseDeleteCommand(),
		a.caseFinalizeCommand(),
	)
	return cmd
}

func (a *app) caseCreateCommand() *cobra.Command {
	var req trialv1.CreateCaseRequest
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Open a new case",
		Example: `  trialctl case create --title "Acme v. Widget" --type civil --jurisdiction Delaware --rounds 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.CreateCase(ctx, &req)
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Case, func(w io.Writer) error {
					return writeCase(w, resp.Case)
				})
			})
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "case title")
	cmd.Flags().StringVar(&req.Description, "description", "", "case description")
	cmd.Flags().StringVar(&req.CaseType, "type", "civil", "case type: civil, criminal, corporate, constitutional or family")
	cmd.Flags().StringVar(&req.Jurisdiction, "jurisdiction", "", "jurisdiction")
	cmd.Flags().Int32Var(&req.MaxRounds, "rounds", 0, "argument rounds 1-5 (0 uses the server default)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("jurisdiction")
	return cmd
}

func (a *app) caseGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <case-id>",
		Short: "Show a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.GetCase(ctx, &trialv1.GetCaseRequest{CaseID: args[0]})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Case, func(w io.Writer) error {
					return writeCase(w, resp.Case)
				})
			})
		},
	}
}

func (a *app) caseListCommand() *cobra.Command {
	var req trialv1.ListCasesRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your cases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.ListCases(ctx, &req)
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp, func(w io.Writer) error {
					return writeCaseTable(w, resp.Cases, resp.NextPageToken)
				})
			})
		},
	}
	cmd.Flags().Int32Var(&req.PageSize, "page-size", 0, "cases per page")
	cmd.Flags().StringVar(&req.PageToken, "page-token", "", "token from a previous page")
	return cmd
}

func (a *app) caseUpdateCommand() *cobra.Command {
	var title, description, caseType, jurisdiction string
	cmd := &cobra.Command{
		Use:     "update <case-id>",
		Short:   "Edit a case's title, description, type or jurisdiction",
		Example: `  trialctl case update CASE_ID --title "Acme v. Widget (amended)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			req := &trialv1.UpdateCaseRequest{CaseID: args[0]}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("type") {
				req.CaseType = &caseType
			}
			if flags.Changed("jurisdiction") {
				req.Jurisdiction = &jurisdiction
			}
			if req.Title == nil && req.Description == nil && req.CaseType == nil && req.Jurisdiction == nil {
				return fmt.Errorf("set at least one of --title, --description, --type or --jurisdiction")
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.UpdateCase(ctx, req)
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Case, func(w io.Writer) error {
					return writeCase(w, resp.Case)
				})
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new case title")
	cmd.Flags().StringVar(&description, "description", "", "new case description")
	cmd.Flags().StringVar(&caseType, "type", "", "new case type")
	cmd.Flags().StringVar(&jurisdiction, "jurisdiction", "", "new jurisdiction")
	return cmd
}

func (a *app) caseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <case-id>",
		Short: "Delete a case that is not finalized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				if _, err := client.DeleteCase(ctx, &trialv1.DeleteCaseRequest{CaseID: args[0]}); err != nil {
					return err
				}
				_, err := fmt.Fprintf(writer(cmd), "deleted case %s\n", args[0])
				return err
			})
		},
	}
}

func (a *app) caseFinalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <case-id>",
		Short: "Lock a case once every round has a verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.FinalizeCase(ctx, &trialv1.FinalizeCaseRequest{CaseID: args[0]})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Case, func(w io.Writer) error {
					return writeCase(w, resp.Case)
				})
			})
		},
	}
}
