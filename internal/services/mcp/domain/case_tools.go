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

// CaseCreateInput represents the MCP tool input for opening a case.
type CaseCreateInput struct {
	Title        string `json:"title" jsonschema:"case title"`
	Description  string `json:"description,omitempty" jsonschema:"optional case description"`
	CaseType     string `json:"case_type" jsonschema:"one of civil, criminal, corporate, constitutional, family"`
	Jurisdiction string `json:"jurisdiction" jsonschema:"jurisdiction the case is argued under"`
	MaxRounds    int    `json:"max_rounds,omitempty" jsonschema:"argument rounds 1-5 (defaults to 5)"`
}

// CaseCreateTool defines the MCP tool schema for opening a case.
func CaseCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "case_create",
		Description: "Opens a new mock trial case in draft status. Upload evidence for both sides before generating the initial verdict.",
	}
}

// CaseCreateHandler executes a case create request.
func CaseCreateHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[CaseCreateInput, CaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CaseCreateInput) (*mcp.CallToolResult, CaseResult, error) {
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CaseResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, CaseResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.CreateCase(callCtx, &trialv1.CreateCaseRequest{
			Title:        input.Title,
			Description:  input.Description,
			CaseType:     input.CaseType,
			Jurisdiction: input.Jurisdiction,
			MaxRounds:    int32(input.MaxRounds),
		}, grpc.Header(&header))
		if err != nil {
			return nil, CaseResult{}, callError("case create", err)
		}
		if response == nil || response.Case == nil {
			return nil, CaseResult{}, fmt.Errorf("case create response is missing")
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), caseResult(response.Case), nil
	}
}

// CaseIDInput targets one case.
type CaseIDInput struct {
	CaseID string `json:"case_id" jsonschema:"case identifier"`
}

// CaseGetTool defines the MCP tool schema for reading a case.
func CaseGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "case_get",
		Description: "Returns a case with its status, current round and evidence counts per side.",
	}
}

// CaseGetHandler executes a case read.
func CaseGetHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[CaseIDInput, CaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CaseIDInput) (*mcp.CallToolResult, CaseResult, error) {
		caseID := strings.TrimSpace(input.CaseID)
		if caseID == "" {
			return nil, CaseResult{}, fmt.Errorf("case_id is required")
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CaseResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, CaseResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.GetCase(callCtx, &trialv1.GetCaseRequest{CaseID: caseID}, grpc.Header(&header))
		if err != nil {
			return nil, CaseResult{}, callError("case get", err)
		}
		if response == nil || response.Case == nil {
			return nil, CaseResult{}, fmt.Errorf("case get response is missing")
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), caseResult(response.Case), nil
	}
}

// CaseFinalizeTool defines the MCP tool schema for locking a case.
func CaseFinalizeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "case_finalize",
		Description: "Locks a case after every argument round has a verdict. A finalized case accepts no further writes.",
	}
}

// CaseFinalizeHandler executes a case finalize request.
func CaseFinalizeHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[CaseIDInput, CaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CaseIDInput) (*mcp.CallToolResult, CaseResult, error) {
		caseID := strings.TrimSpace(input.CaseID)
		if caseID == "" {
			return nil, CaseResult{}, fmt.Errorf("case_id is required")
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, CaseResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, CaseResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.FinalizeCase(callCtx, &trialv1.FinalizeCaseRequest{CaseID: caseID}, grpc.Header(&header))
		if err != nil {
			return nil, CaseResult{}, callError("case finalize", err)
		}
		if response == nil || response.Case == nil {
			return nil, CaseResult{}, fmt.Errorf("case finalize response is missing")
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), caseResult(response.Case), nil
	}
}
