package trial

import (
	"context"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/orchestrator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GenerateInitialVerdict adjudicates round 0.
func (s *Service) GenerateInitialVerdict(ctx context.Context, in *trialv1.GenerateInitialVerdictRequest) (*trialv1.GenerateInitialVerdictResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "generate initial verdict request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.orch.GenerateInitialVerdict(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.GenerateInitialVerdictResponse{Outcome: outcomeToProto(out)}, nil
}

// SubmitArgument records one side's argument and adjudicates the round
// once both sides are in.
func (s *Service) SubmitArgument(ctx context.Context, in *trialv1.SubmitArgumentRequest) (*trialv1.SubmitArgumentResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "submit argument request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	side, err := domain.ParseSide(in.Side)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	out, err := s.orch.SubmitArgument(ctx, orchestrator.SubmitArgumentInput{
		CaseID: in.CaseID,
		UserID: userID,
		Round:  int(in.Round),
		Side:   side,
		Text:   in.Text,
	})
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.SubmitArgumentResponse{Outcome: outcomeToProto(out)}, nil
}

// RetryRoundVerdict re-runs adjudication for a fully argued open round.
func (s *Service) RetryRoundVerdict(ctx context.Context, in *trialv1.RetryRoundVerdictRequest) (*trialv1.RetryRoundVerdictResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "retry round verdict request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.orch.RetryRoundVerdict(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.RetryRoundVerdictResponse{Outcome: outcomeToProto(out)}, nil
}

// GetRoundStatus reports which sides argued the open round.
func (s *Service) GetRoundStatus(ctx context.Context, in *trialv1.GetRoundStatusRequest) (*trialv1.GetRoundStatusResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get round status request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	view, err := s.orch.RoundStatus(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.GetRoundStatusResponse{
		Case:           caseToProto(view.Case, nil),
		Round:          int32(view.Round),
		Submitted:      sidesToProto(view.Submitted),
		Awaiting:       sidesToProto(view.Awaiting),
		VerdictPending: view.VerdictPending,
	}, nil
}

// ListArguments returns a case's arguments by round and side.
func (s *Service) ListArguments(ctx context.Context, in *trialv1.ListArgumentsRequest) (*trialv1.ListArgumentsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list arguments request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	args, err := s.orch.ListArguments(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	resp := &trialv1.ListArgumentsResponse{Arguments: make([]*trialv1.Argument, 0, len(args))}
	for _, arg := range args {
		resp.Arguments = append(resp.Arguments, argumentToProto(arg))
	}
	return resp, nil
}

// ListVerdicts returns a case's verdict history.
func (s *Service) ListVerdicts(ctx context.Context, in *trialv1.ListVerdictsRequest) (*trialv1.ListVerdictsResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list verdicts request is required")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	verdicts, err := s.orch.ListVerdicts(ctx, in.CaseID, userID)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	resp := &trialv1.ListVerdictsResponse{Verdicts: make([]*trialv1.Verdict, 0, len(verdicts))}
	for _, v := range verdicts {
		resp.Verdicts = append(resp.Verdicts, verdictToProto(v))
	}
	return resp, nil
}

// GetVerdict returns one round's verdict, or the latest.
func (s *Service) GetVerdict(ctx context.Context, in *trialv1.GetVerdictRequest) (*trialv1.GetVerdictResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get verdict request is required")
	}
	if in.Round < 0 {
		return nil, status.Error(codes.InvalidArgument, "round must not be negative")
	}
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	round := int(in.Round)
	if in.Latest {
		round = -1
	}
	v, err := s.orch.GetVerdict(ctx, in.CaseID, userID, round)
	if err != nil {
		return nil, handleError(ctx, err)
	}
	return &trialv1.GetVerdictResponse{Verdict: verdictToProto(v)}, nil
}
