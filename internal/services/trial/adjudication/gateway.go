// Package adjudication defines the contract with the external judge and the
// OpenAI-backed implementation of it.
//
// A Gateway call is a pure function of its Context from the orchestrator's
// point of view: it never writes state, and every failure is reported as an
// llm.Failure so callers can tell retryable errors from permanent ones.
package adjudication

import (
	"context"
	"fmt"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
)

// Gateway produces a verdict for one round of a case.
type Gateway interface {
	Adjudicate(ctx context.Context, input Context) (Result, error)
}

// Context is everything the judge sees for one round.
type Context struct {
	Case  domain.Case
	Round int
	SideA []domain.Document
	SideB []domain.Document
	// Arguments holds the round's submissions; empty for round 0.
	Arguments domain.RoundArguments
	// History holds arguments from earlier rounds in (round, side) order.
	History         []domain.Argument
	PreviousVerdict *domain.Verdict
}

// Validate checks that the context is complete for its round.
func (c Context) Validate() error {
	if len(c.SideA) == 0 || len(c.SideB) == 0 {
		return fmt.Errorf("both sides need evidence")
	}
	if c.Round == 0 {
		return nil
	}
	if !c.Arguments.Complete() {
		return fmt.Errorf("round %d needs arguments from both sides", c.Round)
	}
	if c.PreviousVerdict == nil {
		return fmt.Errorf("round %d needs the previous verdict", c.Round)
	}
	return nil
}

// Result is a successful adjudication.
type Result struct {
	Payload    domain.VerdictPayload
	Model      string
	TokensUsed int
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, input Context) (Result, error)

// Adjudicate implements Gateway.
func (f GatewayFunc) Adjudicate(ctx context.Context, input Context) (Result, error) {
	return f(ctx, input)
}

// Unconfigured is the gateway used when no provider credential is set.
type Unconfigured struct{}

// Adjudicate always fails permanently.
func (Unconfigured) Adjudicate(context.Context, Context) (Result, error) {
	return Result{}, llm.Permanent(llm.ReasonNotConfigured, fmt.Errorf("adjudication provider is not configured"))
}
