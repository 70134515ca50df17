package trainline

import "fmt"

// FieldError reports a required entity field that is missing or carries the
// wrong JSON type.
type FieldError struct {
	Entity string
	Field  string
	Want   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %q is missing or not a %s", e.Entity, e.Field, e.Want)
}

// ValueError reports a field that parsed fine but holds an impossible value,
// like a negative price.
type ValueError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}

// ConnectionError is returned once the retry budget for a search request is
// exhausted. It keeps the last status code and response body around so the
// caller can see what the API actually said.
type ConnectionError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("status code %d for url %s\n%s", e.StatusCode, e.URL, e.Body)
}
