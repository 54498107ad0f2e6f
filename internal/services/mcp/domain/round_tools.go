package domain

import (
	"context"
	"fmt"
	"strings"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// VerdictGenerateInitialTool defines the MCP tool schema for the round 0 verdict.
func VerdictGenerateInitialTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "verdict_generate_initial",
		Description: "Generates the initial verdict (round 0) from both sides' evidence and opens argument round 1. Requires evidence for side A and side B.",
	}
}

// VerdictGenerateInitialHandler executes the initial verdict request.
func VerdictGenerateInitialHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[CaseIDInput, OutcomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CaseIDInput) (*mcp.CallToolResult, OutcomeResult, error) {
		caseID := strings.TrimSpace(input.CaseID)
		if caseID == "" {
			return nil, OutcomeResult{}, fmt.Errorf("case_id is required")
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, OutcomeResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcAdjudicationTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, OutcomeResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.GenerateInitialVerdict(callCtx, &trialv1.GenerateInitialVerdictRequest{CaseID: caseID}, grpc.Header(&header))
		if err != nil {
			return nil, OutcomeResult{}, callError("initial verdict", err)
		}
		if response == nil || response.Outcome == nil {
			return nil, OutcomeResult{}, fmt.Errorf("initial verdict response is missing")
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), outcomeResult(response.Outcome), nil
	}
}

// ArgumentSubmitInput represents the MCP tool input for an argument.
type ArgumentSubmitInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
	Round  int    `json:"round,omitempty" jsonschema:"round number (defaults to the open round)"`
	Side   string `json:"side" jsonschema:"arguing side (A or B)"`
	Text   string `json:"text" jsonschema:"argument text"`
}

// ArgumentSubmitTool defines the MCP tool schema for submitting an argument.
func ArgumentSubmitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "argument_submit",
		Description: "Submits one side's argument for the open round. When the other side has already argued, the round verdict is generated in the same call; otherwise the result reports which side is still awaited.",
	}
}

// ArgumentSubmitHandler executes an argument submission.
func ArgumentSubmitHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[ArgumentSubmitInput, OutcomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ArgumentSubmitInput) (*mcp.CallToolResult, OutcomeResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, OutcomeResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcAdjudicationTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, OutcomeResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.SubmitArgument(callCtx, &trialv1.SubmitArgumentRequest{
			CaseID: input.CaseID,
			Round:  int32(input.Round),
			Side:   input.Side,
			Text:   input.Text,
		}, grpc.Header(&header))
		if err != nil {
			return nil, OutcomeResult{}, callError("argument submit", err)
		}
		if response == nil || response.Outcome == nil {
			return nil, OutcomeResult{}, fmt.Errorf("argument submit response is missing")
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), outcomeResult(response.Outcome), nil
	}
}

// RoundStatusResult reports progress of the open round.
type RoundStatusResult struct {
	Case           CaseResult `json:"case" jsonschema:"case state"`
	Round          int        `json:"round" jsonschema:"open round, 0 when no round accepts arguments"`
	Submitted      []string   `json:"submitted,omitempty" jsonschema:"sides that have argued this round"`
	Awaiting       []string   `json:"awaiting,omitempty" jsonschema:"sides still expected to argue"`
	VerdictPending bool       `json:"verdict_pending,omitempty" jsonschema:"both sides argued but no verdict was recorded; retry is possible"`
}

// RoundStatusTool defines the MCP tool schema for round progress.
func RoundStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "round_status",
		Description: "Shows the open round of a case and which sides have argued or are still awaited.",
	}
}

// RoundStatusHandler executes a round status read.
func RoundStatusHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[CaseIDInput, RoundStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CaseIDInput) (*mcp.CallToolResult, RoundStatusResult, error) {
		caseID := strings.TrimSpace(input.CaseID)
		if caseID == "" {
			return nil, RoundStatusResult{}, fmt.Errorf("case_id is required")
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, RoundStatusResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, RoundStatusResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.GetRoundStatus(callCtx, &trialv1.GetRoundStatusRequest{CaseID: caseID}, grpc.Header(&header))
		if err != nil {
			return nil, RoundStatusResult{}, callError("round status", err)
		}
		if response == nil || response.Case == nil {
			return nil, RoundStatusResult{}, fmt.Errorf("round status response is missing")
		}
		result := RoundStatusResult{
			Case:           caseResult(response.Case),
			Round:          int(response.Round),
			Submitted:      response.Submitted,
			Awaiting:       response.Awaiting,
			VerdictPending: response.VerdictPending,
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), result, nil
	}
}

// VerdictListResult lists a case's verdicts ordered by round.
type VerdictListResult struct {
	Verdicts []VerdictResult `json:"verdicts" jsonschema:"verdicts ordered by round"`
}

// VerdictListTool defines the MCP tool schema for listing verdicts.
func VerdictListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "verdict_list",
		Description: "Lists every verdict recorded for a case, from the initial verdict through the last completed round.",
	}
}

// VerdictListHandler executes a verdict list read.
func VerdictListHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[CaseIDInput, VerdictListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CaseIDInput) (*mcp.CallToolResult, VerdictListResult, error) {
		caseID := strings.TrimSpace(input.CaseID)
		if caseID == "" {
			return nil, VerdictListResult{}, fmt.Errorf("case_id is required")
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, VerdictListResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, VerdictListResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.ListVerdicts(callCtx, &trialv1.ListVerdictsRequest{CaseID: caseID}, grpc.Header(&header))
		if err != nil {
			return nil, VerdictListResult{}, callError("verdict list", err)
		}
		if response == nil {
			return nil, VerdictListResult{}, fmt.Errorf("verdict list response is missing")
		}
		result := VerdictListResult{Verdicts: make([]VerdictResult, 0, len(response.Verdicts))}
		for _, verdict := range response.Verdicts {
			result.Verdicts = append(result.Verdicts, verdictResult(verdict))
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), result, nil
	}
}
