package apperror

import "errors"

// Sentinel errors for the failure taxonomy. Client-input errors never reach
// the store; store errors are classified into these at the repository
// boundary so raw driver errors never leak to the presentation layer.
var (
	ErrMissingField            = errors.New("missing required field")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrNoChallengeSelected     = errors.New("no challenge selected")
	ErrMissingOtherDescription = errors.New("missing other description")
	ErrDuplicateEmail          = errors.New("duplicate email")
	ErrStoreNotProvisioned     = errors.New("store not provisioned")
	ErrStore                   = errors.New("store error")
	ErrUnavailable             = errors.New("store unavailable")
)

type AppError struct {
	Err     error  // taxonomy sentinel
	Message string // short human-readable message, always safe to display
	Field   string // optional: form field causing a validation error
	Detail  string // optional: longer diagnostic/remediation text
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func MissingField(field string) *AppError {
	return &AppError{
		Err:     ErrMissingField,
		Message: "Please fill in all required fields (Name, Email, Subject)",
		Field:   field,
	}
}

func InvalidEmail() *AppError {
	return &AppError{
		Err:     ErrInvalidEmail,
		Message: "Please enter a valid email address",
		Field:   "email",
	}
}

func NoChallengeSelected() *AppError {
	return &AppError{
		Err:     ErrNoChallengeSelected,
		Message: "Please select at least one learning challenge",
		Field:   "challenges",
	}
}

func MissingOtherDescription() *AppError {
	return &AppError{
		Err:     ErrMissingOtherDescription,
		Message: "Please describe your challenge when selecting \"Other\"",
		Field:   "otherChallenge",
	}
}

func DuplicateEmail() *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: "This email is already registered",
		Field:   "email",
	}
}

// StoreNotProvisioned indicates the schema hasn't been created — an
// operator problem, so the detail carries a remediation hint.
func StoreNotProvisioned(detail string) *AppError {
	return &AppError{
		Err:     ErrStoreNotProvisioned,
		Message: "We couldn't save your signup right now",
		Detail:  detail,
	}
}

// StoreFailure wraps any other store error. The user-facing message stays
// generic; the underlying cause travels in Detail for logs only.
func StoreFailure(detail string) *AppError {
	return &AppError{
		Err:     ErrStore,
		Message: "An unexpected error occurred. Please try again later",
		Detail:  detail,
	}
}

// Unavailable is the read-path degradation: the store is unreachable or not
// configured, so callers should render an empty state instead of crashing.
func Unavailable(detail string) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Message: "Statistics are temporarily unavailable",
		Detail:  detail,
	}
}
