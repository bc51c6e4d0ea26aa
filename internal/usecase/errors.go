package usecase

// DomainError is a rule violation the caller can fix: bad input, missing
// precondition, wrong lifecycle state.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure: gateway unreachable,
// malformed agent response, broken registry write. Recoverable by
// re-invoking the operation.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// Domain error codes shared by the campaign use cases.
const (
	CodeCampaignNotFound   = "CAMPAIGN_NOT_FOUND"
	CodeDraftNotFound      = "DRAFT_NOT_FOUND"
	CodeNoLeads            = "NO_LEADS"
	CodeNoApprovedDrafts   = "NO_APPROVED_DRAFTS"
	CodeTransitionInFlight = "TRANSITION_IN_FLIGHT"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeEmptyCSV           = "EMPTY_CSV"
	CodeUnknownEvent       = "UNKNOWN_EVENT"
)
