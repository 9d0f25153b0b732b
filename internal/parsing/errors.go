package parsing

import "fmt"

// APICallError means the model could not be reached for an extraction.
type APICallError struct {
	Extraction string // schema name, e.g. "profession"
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	msg := e.Extraction + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError means the model answered but the reply was unusable.
type ParseError struct {
	Extraction string
	Message    string
	Cause      error
}

func (e *ParseError) Error() string {
	msg := e.Extraction + " reply rejected: " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ValidationError rejects user-supplied profession data.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid profession: " + e.Message
	}
	return fmt.Sprintf("invalid profession %s: %s", e.Field, e.Message)
}
