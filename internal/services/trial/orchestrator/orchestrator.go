// Package orchestrator owns the case lifecycle: it is the only writer of a
// case's status and current round.
//
// Work on one case is serialized by an in-process keyed lock held across the
// whole critical section (precondition check, adjudication, verdict commit).
// The store re-checks the observed case state when it commits, so a second
// process sharing the database sees a conflict instead of a duplicate
// verdict. Different cases never wait on each other.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/platform/id"
	"github.com/louisbranch/mocktrial/internal/services/trial/adjudication"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/evidence"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/louisbranch/mocktrial/internal/services/trial/orchestrator"
	// DefaultGatewayTimeout bounds one adjudication call.
	DefaultGatewayTimeout = 60 * time.Second
	caseNumberCodeLength  = 6
	caseNumberAttempts    = 3
)

// Ingestor turns an upload into evidence text.
type Ingestor interface {
	Ingest(ctx context.Context, fileName string, data []byte) (evidence.Extraction, error)
}

// Config tunes orchestrator defaults.
type Config struct {
	GatewayTimeout   time.Duration
	DefaultMaxRounds int
}

// Orchestrator runs case, evidence and round transitions.
type Orchestrator struct {
	store       storage.Store
	gateway     adjudication.Gateway
	ingestor    Ingestor
	locks       *caseLocks
	tracer      trace.Tracer
	clock       func() time.Time
	idGenerator func() (string, error)
	codeGen     func() (string, error)
	logf        func(format string, args ...any)

	gatewayTimeout   time.Duration
	defaultMaxRounds int
}

// New builds an orchestrator with default dependencies.
func New(store storage.Store, gateway adjudication.Gateway, ingestor Ingestor, cfg Config) *Orchestrator {
	if gateway == nil {
		gateway = adjudication.Unconfigured{}
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = DefaultGatewayTimeout
	}
	if cfg.DefaultMaxRounds <= 0 {
		cfg.DefaultMaxRounds = domain.MaxRoundsLimit
	}
	return &Orchestrator{
		store:       store,
		gateway:     gateway,
		ingestor:    ingestor,
		locks:       newCaseLocks(),
		tracer:      otel.Tracer(tracerName),
		clock:       time.Now,
		idGenerator: id.NewID,
		codeGen: func() (string, error) {
			return id.ShortCode(caseNumberCodeLength)
		},
		logf:             log.Printf,
		gatewayTimeout:   cfg.GatewayTimeout,
		defaultMaxRounds: cfg.DefaultMaxRounds,
	}
}

func (o *Orchestrator) now() time.Time {
	return o.clock().UTC()
}

func (o *Orchestrator) ready() error {
	if o == nil || o.store == nil {
		return fmt.Errorf("trial store is not configured")
	}
	return nil
}

func (o *Orchestrator) startSpan(ctx context.Context, name, caseID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if caseID != "" {
		attrs = append(attrs, attribute.String("trial.case_id", caseID))
	}
	return o.tracer.Start(ctx, "trial.orchestrator."+name, trace.WithAttributes(attrs...))
}

// finish records err on the span and logs failures other than caller
// mistakes once, at the operation boundary.
func (o *Orchestrator) finish(span trace.Span, op, caseID string, err error) {
	defer span.End()
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, string(apperrors.GetCode(err)))
	switch {
	case apperrors.IsKind(err, apperrors.KindGatewayTransient),
		apperrors.IsKind(err, apperrors.KindGatewayPermanent),
		apperrors.GetCode(err) == apperrors.CodeUnknown:
		o.logf("%s case=%s code=%s: %v", op, caseID, apperrors.GetCode(err), err)
	}
}

// loadCase reads a case the user owns.
func (o *Orchestrator) loadCase(ctx context.Context, caseID, userID string) (domain.Case, error) {
	if caseID == "" {
		return domain.Case{}, domain.ErrEmptyCaseID
	}
	c, err := o.store.GetCase(ctx, caseID)
	if err != nil {
		return domain.Case{}, storeError(err, "case")
	}
	if !c.OwnedBy(userID) {
		return domain.Case{}, permissionDenied()
	}
	return c, nil
}

func (o *Orchestrator) lockCase(ctx context.Context, caseID string) (func(), error) {
	unlock, err := o.locks.Lock(ctx, caseID)
	if err != nil {
		return nil, requestEnded(caseID, err)
	}
	return unlock, nil
}

// requestEnded classifies a context error raised while waiting on a case.
func requestEnded(caseID string, err error) error {
	code := apperrors.CodeRequestCanceled
	if errors.Is(err, context.DeadlineExceeded) {
		code = apperrors.CodeRequestTimeout
	}
	return apperrors.WrapWithMetadata(code, "wait for case "+caseID, map[string]string{"CaseID": caseID}, err)
}

func storeError(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeNotFound, what+" not found", err)
	}
	return err
}

func caseLocked(caseID string) error {
	return apperrors.WithMetadata(apperrors.CodeCaseLocked, "case is finalized", map[string]string{"CaseID": caseID})
}
