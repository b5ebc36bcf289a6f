package toolerr

import "errors"

// ErrorClass categorizes errors by their nature so callers can decide how to
// present a failure without inspecting individual codes.
type ErrorClass string

const (
	// ErrorClassInfrastructure indicates environment or setup issues
	// Examples: binary missing, tool exited non-zero
	ErrorClassInfrastructure ErrorClass = "infrastructure"

	// ErrorClassSemantic indicates the tool broke its output contract
	// Examples: malformed JSON, unknown severity, invalid coverage XML
	ErrorClassSemantic ErrorClass = "semantic"

	// ErrorClassTransient indicates temporary failures that may resolve
	// Examples: timeouts
	ErrorClassTransient ErrorClass = "transient"

	// ErrorClassPermanent indicates the tool explicitly refused to continue
	ErrorClassPermanent ErrorClass = "permanent"
)

// DefaultClassForCode returns the default error class for a given error code.
func DefaultClassForCode(code string) ErrorClass {
	switch code {
	case ErrCodeBinaryNotFound, ErrCodeProcessFailed:
		return ErrorClassInfrastructure
	case ErrCodeMalformedOutput, ErrCodeUnknownSeverity, ErrCodeCoverageParse, ErrCodeInvalidInput:
		return ErrorClassSemantic
	case ErrCodeAbort:
		return ErrorClassPermanent
	case ErrCodeTimeout, ErrCodeExecutionFailed:
		return ErrorClassTransient
	default:
		return ErrorClassTransient
	}
}

// ClassOf returns the class of err: the explicit Class when set, otherwise
// the default for its code. Errors that are not *Error yield "".
func ClassOf(err error) ErrorClass {
	var te *Error
	if !errors.As(err, &te) {
		return ""
	}
	if te.Class != "" {
		return te.Class
	}
	return DefaultClassForCode(te.Code)
}
