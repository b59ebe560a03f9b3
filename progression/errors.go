package progression

// Stable error codes surfaced to API clients in the {ok:false, error:code} envelope.
const (
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeNoPublishedUnits = "NO_PUBLISHED_UNITS"
	CodeIncompleteDay    = "INCOMPLETE_DAY"
	CodeInvalidDay       = "INVALID_DAY"
	CodeMissingSlug      = "MISSING_SLUG"
	CodeInvalidBody      = "INVALID_BODY"
	CodeUnknownAction    = "UNKNOWN_ACTION"
	CodeServerError      = "SERVER_ERROR"
)

// Error is an engine failure carrying a stable code
type Error struct {
	Code string
}

func (e *Error) Error() string { return e.Code }

var (
	ErrNoPublishedUnits = &Error{Code: CodeNoPublishedUnits}
	ErrUnknownAction    = &Error{Code: CodeUnknownAction}
)

// IncompleteDayError reports which completeDay precondition failed. Practiced
// and Journal hold whether each sub-condition was satisfied; at least one of
// them is false.
type IncompleteDayError struct {
	Practiced bool
	Journal   bool
}

func (e *IncompleteDayError) Error() string { return CodeIncompleteDay }
