// Package apperror carries the error taxonomy of the catalog service: every failure
// a use case returns is an *Error tagged with one of the codes below, so transport
// layers can map it without string matching.
package apperror

// ErrorCode is a string-based error classification that serializes naturally to JSON.
type ErrorCode string

const (
	// CodeInvalidInput marks a validation failure caught before anything is written.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeReferential marks a reference (category, modifier group, asset) that no longer exists.
	CodeReferential ErrorCode = "REFERENTIAL_ERROR"

	// CodeNotFound marks a missing target entity.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeConflict marks a state that prevents the operation, e.g. deleting a non-empty category.
	CodeConflict ErrorCode = "CONFLICT"

	// CodeUnauthenticated marks a request without merchant context.
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"

	// CodeDatabase marks a persistence failure.
	CodeDatabase ErrorCode = "DATABASE_ERROR"

	// CodeUnavailable marks a temporarily unavailable collaborator (lock busy, broker down).
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// CodeInternal marks anything else.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)
