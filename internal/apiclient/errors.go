package apiclient

import "fmt"

// APIError is a non-success response from the backend, normalized to the
// human-readable message the UI surfaces verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError is a transport-level failure: the request never produced an
// HTTP response. Recoverable by retrying the user action.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
