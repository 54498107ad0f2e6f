package trial

import (
	"context"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/orchestrator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UploadDocument adds evidence for one side.
func (s *Service) UploadDocument(ctx context.Context, in *trialv1.UploadDocumentRequest) (*trialv1.UploadDocumentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "upload document request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	side, err := domain.ParseSide(in.Side)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	doc, err := s.orch.AddDocument(ctx, orchestrator.AddDocumentInput{
		CaseID:   in.CaseID,
		UserID:   userID,
		Side:     side,
		Title:    in.Title,
		FileName: in.FileName,
		Data:     in.Content,
	})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.UploadDocumentResponse{Document: documentToProto(doc)}, nil
}

// ListDocuments returns a case's evidence.
func (s *Service) ListDocuments(ctx context.Context, in *trialv1.ListDocumentsRequest) (*trialv1.ListDocumentsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list documents request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	var side domain.Side
	if in.Side != "" {
		side, err = domain.ParseSide(in.Side)
		if err != nil {
			return nil, handleError(ctx, err)
		}
	}
	docs, err := s.orch.ListDocuments(ctx, in.CaseID, userID, side)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	resp := &trialv1.ListDocumentsResponse{Documents: make([]*trialv1.Document, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, documentToProto(doc))
	}
	return resp, nil
}

// GetDocument returns one document; IncludeText adds its full text.
func (s *Service) GetDocument(ctx context.Context, in *trialv1.GetDocumentRequest) (*trialv1.GetDocumentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get document request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.orch.GetDocument(ctx, in.CaseID, in.DocumentID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	out := documentToProto(doc)
	if in.IncludeText {
		out.Text = doc.ExtractedText
	}
	return &trialv1.GetDocumentResponse{Document: out}, nil
}

// DeleteDocument removes evidence from a case that is not finalized.
func (s *Service) DeleteDocument(ctx context.Context, in *trialv1.DeleteDocumentRequest) (*trialv1.DeleteDocumentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "delete document request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.orch.RemoveDocument(ctx, in.CaseID, in.DocumentID, userID); err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.DeleteDocumentResponse{}, nil
}
