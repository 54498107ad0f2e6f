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

// EvidenceUploadTextInput represents the MCP tool input for text evidence.
type EvidenceUploadTextInput struct {
	CaseID   string `json:"case_id" jsonschema:"case identifier"`
	Side     string `json:"side" jsonschema:"side the evidence supports (A or B)"`
	Title    string `json:"title,omitempty" jsonschema:"optional document title"`
	FileName string `json:"file_name,omitempty" jsonschema:"file name ending in .txt or .md (defaults to evidence.txt)"`
	Text     string `json:"text" jsonschema:"document text"`
}

// EvidenceUploadTextResult represents the stored document.
type EvidenceUploadTextResult struct {
	ID        string `json:"id" jsonschema:"document identifier"`
	CaseID    string `json:"case_id" jsonschema:"case identifier"`
	Side      string `json:"side" jsonschema:"side the evidence supports"`
	Title     string `json:"title" jsonschema:"document title"`
	FileType  string `json:"file_type" jsonschema:"detected file type"`
	PageCount int    `json:"page_count" jsonschema:"estimated page count"`
	WordCount int    `json:"word_count" jsonschema:"word count"`
}

// EvidenceUploadTextTool defines the MCP tool schema for text evidence.
func EvidenceUploadTextTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "evidence_upload_text",
		Description: "Adds a plain-text evidence document to one side of a case. Evidence cannot change once the case is finalized.",
	}
}

// EvidenceUploadTextHandler executes a text evidence upload.
func EvidenceUploadTextHandler(client trialv1.TrialServiceClient) mcp.ToolHandlerFor[EvidenceUploadTextInput, EvidenceUploadTextResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EvidenceUploadTextInput) (*mcp.CallToolResult, EvidenceUploadTextResult, error) {
		fileName := strings.TrimSpace(input.FileName)
		if fileName == "" {
			fileName = "evidence.txt"
		}
		invocationID, err := NewInvocationID()
		if err != nil {
			return nil, EvidenceUploadTextResult{}, fmt.Errorf("generate invocation id: %w", err)
		}

		runCtx, cancel := context.WithTimeout(ctx, grpcCallTimeout)
		defer cancel()

		callCtx, callMeta, err := NewOutgoingContext(runCtx, invocationID)
		if err != nil {
			return nil, EvidenceUploadTextResult{}, fmt.Errorf("create request metadata: %w", err)
		}

		var header metadata.MD
		response, err := client.UploadDocument(callCtx, &trialv1.UploadDocumentRequest{
			CaseID:   input.CaseID,
			Side:     input.Side,
			Title:    input.Title,
			FileName: fileName,
			Content:  []byte(input.Text),
		}, grpc.Header(&header))
		if err != nil {
			return nil, EvidenceUploadTextResult{}, callError("evidence upload", err)
		}
		if response == nil || response.Document == nil {
			return nil, EvidenceUploadTextResult{}, fmt.Errorf("evidence upload response is missing")
		}
		doc := response.Document
		result := EvidenceUploadTextResult{
			ID:        doc.ID,
			CaseID:    doc.CaseID,
			Side:      doc.Side,
			Title:     doc.Title,
			FileType:  doc.FileType,
			PageCount: int(doc.PageCount),
			WordCount: int(doc.WordCount),
		}
		return CallToolResultWithMetadata(MergeResponseMetadata(callMeta, header)), result, nil
	}
}
