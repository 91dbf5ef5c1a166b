package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrPayloadTooBig  ErrCode = "PAYLOAD_TOO_LARGE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Quiz-specific ─────────────────────────────────────────────────
	ErrQuizNotFound    ErrCode = "QUIZ_NOT_FOUND"
	ErrSubjectNotFound ErrCode = "SUBJECT_NOT_FOUND"
	ErrTopicNotFound   ErrCode = "TOPIC_NOT_FOUND"
	ErrNoContent       ErrCode = "NO_CONTENT"
	ErrJobNotFound     ErrCode = "IMPORT_JOB_NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal           ErrCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Request payload is not valid JSON."
	case ErrPayloadTooBig:
		return "Request payload exceeds the size limit."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Quiz-specific ─────────────────────────────────────────────────
	case ErrQuizNotFound:
		return "Quiz not found."
	case ErrSubjectNotFound:
		return "Subject not found."
	case ErrTopicNotFound:
		return "Topic not found."
	case ErrNoContent:
		return "The quiz has no text content in any language."
	case ErrJobNotFound:
		return "Import job not found or expired."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	case ErrServiceUnavailable:
		return "One or more dependencies are unavailable."
	default:
		return "An unexpected error occurred."
	}
}
