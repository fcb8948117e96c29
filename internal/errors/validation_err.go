package errors

type ValidationError struct {
	message string
	cause   error
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{
		message: msg,
	}
}

// WrapValidationError keeps cause reachable through errors.Unwrap while
// reporting msg as the error text.
func WrapValidationError(msg string, cause error) *ValidationError {
	return &ValidationError{
		message: msg,
		cause:   cause,
	}
}

func (ve *ValidationError) Error() string {
	return ve.message
}

func (ve *ValidationError) Unwrap() error {
	return ve.cause
}

func (ve *ValidationError) Validation() {}
