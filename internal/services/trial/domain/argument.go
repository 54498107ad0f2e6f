package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
)

// MaxArgumentLength caps a single argument in characters.
const MaxArgumentLength = 20000

// Argument is one side's submission for one round. Arguments are never
// edited; at most one exists per (case, round, side).
type Argument struct {
	ID          string
	CaseID      string
	Round       int
	Side        Side
	Text        string
	SubmittedBy string
	SubmittedAt time.Time
}

// NormalizeArgumentText trims text and enforces length limits.
func NormalizeArgumentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyArgument
	}
	if utf8.RuneCountInString(text) > MaxArgumentLength {
		return "", apperrors.WithMetadata(
			apperrors.CodeArgumentTooLong,
			fmt.Sprintf("argument exceeds %d characters", MaxArgumentLength),
			map[string]string{"Limit": strconv.Itoa(MaxArgumentLength)},
		)
	}
	return text, nil
}

// RoundArguments indexes one round's arguments by side.
type RoundArguments map[Side]Argument

// Complete reports whether both sides submitted.
func (r RoundArguments) Complete() bool {
	_, a := r[SideA]
	_, b := r[SideB]
	return a && b
}

// Missing returns the side still awaited, if exactly one is missing.
func (r RoundArguments) Missing() (Side, bool) {
	_, a := r[SideA]
	_, b := r[SideB]
	switch {
	case a && !b:
		return SideB, true
	case b && !a:
		return SideA, true
	default:
		return "", false
	}
}
