package domain

// Status describes the case lifecycle.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in_progress"
	StatusFinalized  Status = "finalized"
)

// isStatusTransitionAllowed enforces the case lifecycle. Draft and ready
// toggle while evidence is edited; the initial verdict starts the case.
func isStatusTransitionAllowed(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusReady
	case StatusReady:
		return to == StatusDraft || to == StatusInProgress
	case StatusInProgress:
		return to == StatusFinalized
	default:
		return false
	}
}

// IsStatusTransitionAllowed reports whether a status transition is permitted.
func IsStatusTransitionAllowed(from, to Status) bool {
	return isStatusTransitionAllowed(from, to)
}

// AcceptsEvidence reports whether documents may be added or removed.
func (s Status) AcceptsEvidence() bool {
	return s != StatusFinalized
}

// Started reports whether the initial verdict exists.
func (s Status) Started() bool {
	return s == StatusInProgress || s == StatusFinalized
}

// EvidenceStatus is the pre-trial status implied by per-side document counts.
func EvidenceStatus(sideA, sideB int) Status {
	if sideA > 0 && sideB > 0 {
		return StatusReady
	}
	return StatusDraft
}
