// Package trial implements the TrialService gRPC API over the round
// orchestrator. Every method runs as the user named by the bearer token.
package trial

import (
	"context"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/platform/grpc/pagination"
	"github.com/louisbranch/mocktrial/internal/platform/requestctx"
	"github.com/louisbranch/mocktrial/internal/services/trial/orchestrator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

var casePageSize = pagination.PageSizeConfig{Default: defaultPageSize, Max: maxPageSize}

// Service implements trialv1.TrialServiceServer.
type Service struct {
	trialv1.UnimplementedTrialServiceServer
	orch *orchestrator.Orchestrator
}

// NewService creates a Service backed by orch.
func NewService(orch *orchestrator.Orchestrator) *Service {
	return &Service{orch: orch}
}

func (s *Service) caller(ctx context.Context) (string, error) {
	if s == nil || s.orch == nil {
		return "", status.Error(codes.Internal, "trial orchestrator is not configured")
	}
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return "", handleError(ctx, apperrors.New(apperrors.CodeUnauthenticated, "caller identity is missing"))
	}
	return userID, nil
}

func handleError(ctx context.Context, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return apperrors.HandleError(err, apperrors.LocaleFromContext(ctx))
}
