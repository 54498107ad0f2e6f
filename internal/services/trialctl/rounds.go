package trialctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/spf13/cobra"
)

func (a *app) verdictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verdict",
		Short: "Generate and read verdicts",
	}
	cmd.AddCommand(
		a.verdictInitialCommand(),
		a.verdictListCommand(),
		a.verdictGetCommand(),
		a.verdictRetryCommand(),
	)
	return cmd
}

func (a *app) verdictInitialCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initial <case-id>",
		Short: "Generate the round 0 verdict from both sides' evidence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOutcome(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) (*trialv1.Outcome, error) {
				resp, err := client.GenerateInitialVerdict(ctx, &trialv1.GenerateInitialVerdictRequest{CaseID: args[0]})
				if err != nil {
					return nil, err
				}
				return resp.Outcome, nil
			})
		},
	}
}

func (a *app) verdictRetryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <case-id>",
		Short: "Retry the verdict of a round whose arguments are both in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOutcome(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) (*trialv1.Outcome, error) {
				resp, err := client.RetryRoundVerdict(ctx, &trialv1.RetryRoundVerdictRequest{CaseID: args[0]})
				if err != nil {
					return nil, err
				}
				return resp.Outcome, nil
			})
		},
	}
}

func (a *app) verdictListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <case-id>",
		Short: "List verdicts ordered by round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.ListVerdicts(ctx, &trialv1.ListVerdictsRequest{CaseID: args[0]})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Verdicts, func(w io.Writer) error {
					return writeVerdicts(w, resp.Verdicts)
				})
			})
		},
	}
}

func (a *app) verdictGetCommand() *cobra.Command {
	var round int32
	cmd := &cobra.Command{
		Use:   "get <case-id>",
		Short: "Show one verdict (the latest unless --round is set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			req := &trialv1.GetVerdictRequest{CaseID: args[0], Round: round, Latest: !cmd.Flags().Changed("round")}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.GetVerdict(ctx, req)
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Verdict, func(w io.Writer) error {
					return writeVerdict(w, resp.Verdict)
				})
			})
		},
	}
	cmd.Flags().Int32Var(&round, "round", 0, "round number (0 is the initial verdict)")
	return cmd
}

func (a *app) argumentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "argument",
		Short: "Submit and read arguments",
	}
	cmd.AddCommand(a.argumentSubmitCommand(), a.argumentListCommand())
	return cmd
}

func (a *app) argumentSubmitCommand() *cobra.Command {
	var (
		round    int32
		side     string
		text     string
		textFile string
	)
	cmd := &cobra.Command{
		Use:   "submit <case-id>",
		Short: "Submit one side's argument for the open round",
		Example: `  trialctl argument submit CASE_ID --side A --text "The waiver was never signed."
  trialctl argument submit CASE_ID --side B --file rebuttal.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := argumentText(text, textFile)
			if err != nil {
				return err
			}
			return a.runOutcome(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) (*trialv1.Outcome, error) {
				resp, err := client.SubmitArgument(ctx, &trialv1.SubmitArgumentRequest{
					CaseID: args[0],
					Round:  round,
					Side:   side,
					Text:   body,
				})
				if err != nil {
					return nil, err
				}
				return resp.Outcome, nil
			})
		},
	}
	cmd.Flags().Int32Var(&round, "round", 0, "round number (0 targets the open round)")
	cmd.Flags().StringVar(&side, "side", "", "arguing side: A or B")
	cmd.Flags().StringVar(&text, "text", "", "argument text")
	cmd.Flags().StringVar(&textFile, "file", "", "read the argument from a file ('-' for stdin)")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	_ = cmd.MarkFlagRequired("side")
	return cmd
}

func argumentText(text, file string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	case strings.TrimSpace(text) == "":
		return "", errors.New("argument text is required (--text or --file)")
	default:
		return text, nil
	}
}

func (a *app) argumentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <case-id>",
		Short: "List arguments ordered by round and side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.ListArguments(ctx, &trialv1.ListArgumentsRequest{CaseID: args[0]})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp.Arguments, func(w io.Writer) error {
					return writeArgumentTable(w, resp.Arguments)
				})
			})
		},
	}
}

func (a *app) roundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Inspect round progress",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status <case-id>",
		Short: "Show which sides have argued the open round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
				resp, err := client.GetRoundStatus(ctx, &trialv1.GetRoundStatusRequest{CaseID: args[0]})
				if err != nil {
					return err
				}
				return render(writer(cmd), format, resp, func(w io.Writer) error {
					return writeRoundStatus(w, resp)
				})
			})
		},
	})
	return cmd
}

// runOutcome runs a round transition and renders its outcome.
func (a *app) runOutcome(cmd *cobra.Command, call func(ctx context.Context, client trialv1.TrialServiceClient) (*trialv1.Outcome, error)) error {
	format, err := a.output()
	if err != nil {
		return err
	}
	return a.withClient(cmd, func(ctx context.Context, client trialv1.TrialServiceClient) error {
		outcome, err := call(ctx, client)
		if err != nil {
			return err
		}
		if outcome == nil {
			return errors.New("trial service returned no outcome")
		}
		return render(writer(cmd), format, outcome, func(w io.Writer) error {
			return writeOutcome(w, outcome)
		})
	})
}
