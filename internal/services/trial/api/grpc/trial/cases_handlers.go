package trial

import (
	"context"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/platform/grpc/pagination"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CreateCase opens a case owned by the caller.
func (s *Service) CreateCase(ctx context.Context, in *trialv1.CreateCaseRequest) (*trialv1.CreateCaseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "create case request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.orch.CreateCase(ctx, domain.CreateCaseInput{
		OwnerUserID:  userID,
		Title:        in.Title,
		Description:  in.Description,
		CaseType:     in.CaseType,
		Jurisdiction: in.Jurisdiction,
		MaxRounds:    int(in.MaxRounds),
	})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.CreateCaseResponse{Case: caseToProto(c, &domain.CaseCounts{})}, nil
}

// GetCase returns one of the caller's cases with ledger counts.
func (s *Service) GetCase(ctx context.Context, in *trialv1.GetCaseRequest) (*trialv1.GetCaseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get case request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	detail, err := s.orch.GetCase(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.GetCaseResponse{Case: caseToProto(detail.Case, &detail.Counts)}, nil
}

// ListCases returns a page of the caller's cases.
func (s *Service) ListCases(ctx context.Context, in *trialv1.ListCasesRequest) (*trialv1.ListCasesResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list cases request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := pagination.DecodeToken(in.PageToken)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	page, err := s.orch.ListCases(ctx, userID, pagination.ClampPageSize(in.PageSize, casePageSize), cursor)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	resp := &trialv1.ListCasesResponse{
		Cases:         make([]*trialv1.Case, 0, len(page.Cases)),
		NextPageToken: pagination.EncodeToken(page.NextPageToken),
	}
	for _, c := range page.Cases {
		resp.Cases = append(resp.Cases, caseToProto(c, nil))
	}
	return resp, nil
}

// UpdateCase edits the metadata of one of the caller's cases.
func (s *Service) UpdateCase(ctx context.Context, in *trialv1.UpdateCaseRequest) (*trialv1.UpdateCaseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "update case request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.orch.UpdateCase(ctx, in.CaseID, userID, domain.UpdateCaseInput{
		Title:        in.Title,
		Description:  in.Description,
		CaseType:     in.CaseType,
		Jurisdiction: in.Jurisdiction,
	})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.UpdateCaseResponse{Case: caseToProto(c, nil)}, nil
}

// DeleteCase removes one of the caller's cases unless it is finalized.
func (s *Service) DeleteCase(ctx context.Context, in *trialv1.DeleteCaseRequest) (*trialv1.DeleteCaseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "delete case request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.orch.DeleteCase(ctx, in.CaseID, userID); err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.DeleteCaseResponse{}, nil
}

// FinalizeCase locks a case after its last round.
func (s *Service) FinalizeCase(ctx context.Context, in *trialv1.FinalizeCaseRequest) (*trialv1.FinalizeCaseResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "finalize case request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.orch.FinalizeCase(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.FinalizeCaseResponse{Case: caseToProto(c, nil)}, nil
}
