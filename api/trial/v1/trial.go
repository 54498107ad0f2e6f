package trialv1

import "time"

// Outcome kinds.
const (
	OutcomeVerdictGenerated    = "verdict_generated"
	OutcomeWaitingForOtherSide = "waiting_for_other_side"
)

// Case is a trial case as seen by its owner.
type Case struct {
	ID           string      `json:"id"`
	CaseNumber   string      `json:"case_number"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	CaseType     string      `json:"case_type"`
	Jurisdiction string      `json:"jurisdiction"`
	Status       string      `json:"status"`
	CurrentRound int32       `json:"current_round"`
	MaxRounds    int32       `json:"max_rounds"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	FinalizedAt  *time.Time  `json:"finalized_at,omitempty"`
	Counts       *CaseCounts `json:"counts,omitempty"`
}

// CaseCounts summarizes a case's ledgers.
type CaseCounts struct {
	SideADocuments int32 `json:"side_a_documents"`
	SideBDocuments int32 `json:"side_b_documents"`
	Arguments      int32 `json:"arguments"`
	Verdicts       int32 `json:"verdicts"`
}

// Document is one piece of evidence.
type Document struct {
	ID        string `json:"id"`
	CaseID    string `json:"case_id"`
	Side      string `json:"side"`
	Title     string `json:"title"`
	FileName  string `json:"file_name"`
	FileType  string `json:"file_type"`
	PageCount int32  `json:"page_count"`
	WordCount int32  `json:"word_count"`
	Excerpt   string `json:"excerpt,omitempty"`
	// Text is the full extracted text, set only when requested.
	Text       string    `json:"text,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Argument is one side's submission for a round.
type Argument struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"case_id"`
	Round       int32     `json:"round"`
	Side        string    `json:"side"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Issue is one question ruled on by a verdict.
type Issue struct {
	Issue     string `json:"issue"`
	Finding   string `json:"finding"`
	Reasoning string `json:"reasoning"`
}

// Verdict is the ruling for one round.
type Verdict struct {
	ID            string    `json:"id"`
	CaseID        string    `json:"case_id"`
	Round         int32     `json:"round"`
	Summary       string    `json:"summary"`
	Leader        string    `json:"leader"`
	Confidence    float64   `json:"confidence"`
	Issues        []Issue   `json:"issues,omitempty"`
	FinalDecision string    `json:"final_decision"`
	CitedEvidence []string  `json:"cited_evidence,omitempty"`
	Model         string    `json:"model"`
	TokensUsed    int32     `json:"tokens_used"`
	CreatedAt     time.Time `json:"created_at"`
}

// Outcome is the result of a round transition.
type Outcome struct {
	Kind          string   `json:"kind"`
	Round         int32    `json:"round"`
	Verdict       *Verdict `json:"verdict,omitempty"`
	SideRemaining string   `json:"side_remaining,omitempty"`
	Case          *Case    `json:"case,omitempty"`
}

type CreateCaseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	CaseType     string `json:"case_type"`
	Jurisdiction string `json:"jurisdiction"`
	MaxRounds    int32  `json:"max_rounds,omitempty"`
}

type CreateCaseResponse struct {
	Case *Case `json:"case"`
}

type GetCaseRequest struct {
	CaseID string `json:"case_id"`
}

type GetCaseResponse struct {
	Case *Case `json:"case"`
}

type ListCasesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ListCasesResponse struct {
	Cases         []*Case `json:"cases"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

// UpdateCaseRequest edits case metadata; nil fields are left unchanged.
type UpdateCaseRequest struct {
	CaseID       string  `json:"case_id"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	CaseType     *string `json:"case_type,omitempty"`
	Jurisdiction *string `json:"jurisdiction,omitempty"`
}

type UpdateCaseResponse struct {
	Case *Case `json:"case"`
}

type DeleteCaseRequest struct {
	CaseID string `json:"case_id"`
}

type DeleteCaseResponse struct{}

type UploadDocumentRequest struct {
	CaseID   string `json:"case_id"`
	Side     string `json:"side"`
	Title    string `json:"title,omitempty"`
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
}

type UploadDocumentResponse struct {
	Document *Document `json:"document"`
}

type ListDocumentsRequest struct {
	CaseID string `json:"case_id"`
	// Side filters to one side; empty lists both.
	Side string `json:"side,omitempty"`
}

type ListDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}

type GetDocumentRequest struct {
	CaseID     string `json:"case_id"`
	DocumentID string `json:"document_id"`
	// IncludeText returns the full extracted text alongside the excerpt.
	IncludeText bool `json:"include_text,omitempty"`
}

type GetDocumentResponse struct {
	Document *Document `json:"document"`
}

type DeleteDocumentRequest struct {
	CaseID     string `json:"case_id"`
	DocumentID string `json:"document_id"`
}

type DeleteDocumentResponse struct{}

type GenerateInitialVerdictRequest struct {
	CaseID string `json:"case_id"`
}

type GenerateInitialVerdictResponse struct {
	Outcome *Outcome `json:"outcome"`
}

type SubmitArgumentRequest struct {
	CaseID string `json:"case_id"`
	// Round zero targets the open round.
	Round int32  `json:"round,omitempty"`
	Side  string `json:"side"`
	Text  string `json:"text"`
}

type SubmitArgumentResponse struct {
	Outcome *Outcome `json:"outcome"`
}

type RetryRoundVerdictRequest struct {
	CaseID string `json:"case_id"`
}

type RetryRoundVerdictResponse struct {
	Outcome *Outcome `json:"outcome"`
}

type GetRoundStatusRequest struct {
	CaseID string `json:"case_id"`
}

type GetRoundStatusResponse struct {
	Case           *Case    `json:"case"`
	Round          int32    `json:"round"`
	Submitted      []string `json:"submitted,omitempty"`
	Awaiting       []string `json:"awaiting,omitempty"`
	VerdictPending bool     `json:"verdict_pending,omitempty"`
}

type ListArgumentsRequest struct {
	CaseID string `json:"case_id"`
}

type ListArgumentsResponse struct {
	Arguments []*Argument `json:"arguments"`
}

type ListVerdictsRequest struct {
	CaseID string `json:"case_id"`
}

type ListVerdictsResponse struct {
	Verdicts []*Verdict `json:"verdicts"`
}

type GetVerdictRequest struct {
	CaseID string `json:"case_id"`
	Round  int32  `json:"round"`
	// Latest ignores Round and returns the newest verdict.
	Latest bool `json:"latest,omitempty"`
}

type GetVerdictResponse struct {
	Verdict *Verdict `json:"verdict"`
}

type FinalizeCaseRequest struct {
	CaseID string `json:"case_id"`
}

type FinalizeCaseResponse struct {
	Case *Case `json:"case"`
}
