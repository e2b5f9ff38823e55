package carbon

import "fmt"

// MissingParameterError is returned when a required query parameter is absent or blank.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("Missing required query parameter: '%s'", e.Name)
}

// UpstreamErrorKind classifies why a call to the carbon intensity API failed.
type UpstreamErrorKind string

const (
	// KindTransport covers connection errors and timeouts.
	KindTransport UpstreamErrorKind = "transport"
	// KindStatus is a non-2xx response.
	KindStatus UpstreamErrorKind = "status"
	// KindMalformed is a body that is not JSON or has no top-level "data" field.
	KindMalformed UpstreamErrorKind = "malformed"
	// KindBreaker means the circuit breaker rejected the call without contacting upstream.
	KindBreaker UpstreamErrorKind = "breaker"
)

// UpstreamError wraps any failure talking to the carbon intensity API.
type UpstreamError struct {
	Kind UpstreamErrorKind
	// Status is the upstream HTTP status for KindStatus, zero otherwise.
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Kind == KindMalformed {
		return fmt.Sprintf("Unexpected response format from Carbon Intensity API: %v", e.Err)
	}
	return fmt.Sprintf("Error calling Carbon Intensity API: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ClientFault reports whether upstream rejected the request itself (a 4xx),
// as opposed to being unavailable.
func (e *UpstreamError) ClientFault() bool {
	return e.Kind == KindStatus && e.Status >= 400 && e.Status < 500
}
