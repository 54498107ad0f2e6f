package trialctl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func parseOutputFormat(value string) (outputFormat, error) {
	switch outputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", outputText:
		return outputText, nil
	case outputJSON:
		return outputJSON, nil
	case outputYAML, "yml":
		return outputYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", value)
	}
}

// render writes value in a structured format, or calls text for the
// human-readable one.
func render(w io.Writer, format outputFormat, value any, text func(io.Writer) error) error {
	switch format {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case outputYAML:
		// Round-trip through JSON so YAML keys follow the wire names.
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(generic); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return text(w)
	}
}

func writeCase(w io.Writer, c *trialv1.Case) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
	fmt.Fprintf(tw, "Number:\t%s\n", c.CaseNumber)
	fmt.Fprintf(tw, "Title:\t%s\n", c.Title)
	fmt.Fprintf(tw, "Type:\t%s\n", c.CaseType)
	fmt.Fprintf(tw, "Jurisdiction:\t%s\n", c.Jurisdiction)
	fmt.Fprintf(tw, "Status:\t%s\n", c.Status)
	fmt.Fprintf(tw, "Round:\t%d/%d\n", c.CurrentRound, c.MaxRounds)
	if c.Counts != nil {
		fmt.Fprintf(tw, "Evidence:\tA=%d B=%d\n", c.Counts.SideADocuments, c.Counts.SideBDocuments)
		fmt.Fprintf(tw, "Arguments:\t%d\n", c.Counts.Arguments)
		fmt.Fprintf(tw, "Verdicts:\t%d\n", c.Counts.Verdicts)
	}
	fmt.Fprintf(tw, "Created:\t%s\n", formatTime(c.CreatedAt))
	if c.FinalizedAt != nil {
		fmt.Fprintf(tw, "Finalized:\t%s\n", formatTime(*c.FinalizedAt))
	}
	return tw.Flush()
}

func writeCaseTable(w io.Writer, cases []*trialv1.Case, nextPageToken string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tSTATUS\tROUND\tTITLE")
	for _, c := range cases {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n", c.ID, c.CaseNumber, c.Status, c.CurrentRound, c.MaxRounds, c.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if nextPageToken != "" {
		_, err := fmt.Fprintf(w, "\nnext page: --page-token %s\n", nextPageToken)
		return err
	}
	return nil
}

func writeDocumentTable(w io.Writer, docs []*trialv1.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIDE\tTYPE\tPAGES\tWORDS\tTITLE")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", d.ID, d.Side, d.FileType, d.PageCount, d.WordCount, d.Title)
	}
	return tw.Flush()
}

func writeDocument(w io.Writer, d *trialv1.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", d.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", d.Title)
	fmt.Fprintf(tw, "Side:\t%s\n", d.Side)
	fmt.Fprintf(tw, "File:\t%s (%s)\n", d.FileName, d.FileType)
	fmt.Fprintf(tw, "Size:\t%d pages, %d words\n", d.PageCount, d.WordCount)
	fmt.Fprintf(tw, "Uploaded:\t%s\n", formatTime(d.UploadedAt))
	if err := tw.Flush(); err != nil {
		return err
	}
	body := d.Text
	if body == "" {
		body = d.Excerpt
	}
	if body == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%s\n", body)
	return err
}

func writeArgumentTable(w io.Writer, args []*trialv1.Argument) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tSIDE\tSUBMITTED\tTEXT")
	for _, a := range args {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", a.Round, a.Side, formatTime(a.SubmittedAt), excerpt(a.Text, 60))
	}
	return tw.Flush()
}

func writeVerdict(w io.Writer, v *trialv1.Verdict) error {
	label := fmt.Sprintf("Round %d", v.Round)
	if v.Round == 0 {
		label = "Initial verdict"
	}
	fmt.Fprintf(w, "%s: leader %s (confidence %.2f)\n", label, v.Leader, v.Confidence)
	fmt.Fprintf(w, "  %s\n", v.Summary)
	for _, issue := range v.Issues {
		fmt.Fprintf(w, "  - %s: %s\n", issue.Issue, issue.Finding)
	}
	_, err := fmt.Fprintf(w, "  Decision: %s\n", v.FinalDecision)
	return err
}

func writeVerdicts(w io.Writer, verdicts []*trialv1.Verdict) error {
	if len(verdicts) == 0 {
		_, err := fmt.Fprintln(w, "no verdicts yet")
		return err
	}
	for i, v := range verdicts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeVerdict(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeOutcome(w io.Writer, o *trialv1.Outcome) error {
	switch o.Kind {
	case trialv1.OutcomeWaitingForOtherSide:
		_, err := fmt.Fprintf(w, "Argument recorded for round %d; waiting for side %s.\n", o.Round, o.SideRemaining)
		return err
	default:
		if o.Verdict == nil {
			_, err := fmt.Fprintf(w, "Verdict generated for round %d.\n", o.Round)
			return err
		}
		return writeVerdict(w, o.Verdict)
	}
}

func writeRoundStatus(w io.Writer, r *trialv1.GetRoundStatusResponse) error {
	if r.Round == 0 {
		_, err := fmt.Fprintf(w, "No round is open (status %s, round %d/%d).\n", r.Case.Status, r.Case.CurrentRound, r.Case.MaxRounds)
		return err
	}
	fmt.Fprintf(w, "Round %d of %d\n", r.Round, r.Case.MaxRounds)
	fmt.Fprintf(w, "  submitted: %s\n", joinOrNone(r.Submitted))
	fmt.Fprintf(w, "  awaiting:  %s\n", joinOrNone(r.Awaiting))
	if r.VerdictPending {
		_, err := fmt.Fprintln(w, "  verdict pending: run 'trialctl verdict retry'")
		return err
	}
	return nil
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
