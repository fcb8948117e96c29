package errors

// UpstreamError marks a failed call to the model provider. Its text is the
// provider's own message so callers see exactly what the service reported.
type UpstreamError struct {
	provider string
	cause    error
}

func NewUpstreamError(provider string, cause error) *UpstreamError {
	return &UpstreamError{
		provider: provider,
		cause:    cause,
	}
}

func (ue *UpstreamError) Error() string {
	if ue.cause == nil {
		return ue.provider + " request failed"
	}

	return ue.cause.Error()
}

func (ue *UpstreamError) Unwrap() error {
	return ue.cause
}

func (ue *UpstreamError) Provider() string {
	return ue.provider
}

func (ue *UpstreamError) Upstream() {}
