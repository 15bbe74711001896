package response

// ErrCode is a typed error code enum for consistent error identification.
type ErrCode string

const (
	// ─── Admin gate ────────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrLoginRequired      ErrCode = "LOGIN_REQUIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrUnhealthy ErrCode = "UNHEALTHY"
	ErrInternal  ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrLoginRequired:
		return "Please log in to access the admin area."
	case ErrValidation:
		return "Please fill in all required fields."
	case ErrNotFound:
		return "The requested page does not exist."
	case ErrRateLimitExceeded:
		return "Too many attempts. Please try again later."
	case ErrUnhealthy:
		return "Service is unhealthy."
	case ErrInternal:
		return "Something went wrong. Please try again."
	default:
		return "An unknown error occurred."
	}
}

// CodeFromString maps a code carried in a query string back to its ErrCode.
// Unknown values yield the empty code.
func CodeFromString(s string) ErrCode {
	switch code := ErrCode(s); code {
	case ErrInvalidCredentials, ErrLoginRequired, ErrValidation, ErrNotFound,
		ErrRateLimitExceeded, ErrUnhealthy, ErrInternal:
		return code
	default:
		return ""
	}
}
