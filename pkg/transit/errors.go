package transit

import "fmt"

// ParseError means no destination could be extracted from the text. Callers
// should ask a clarifying follow-up rather than fail the conversation.
type ParseError struct {
	Text string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("could not understand where you want to go from %q", e.Text)
}

// ResolutionError means a place name could not be turned into a coordinate.
type ResolutionError struct {
	Name string
	City string
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("could not find a place called %q in %s", e.Name, e.City)
}

// NoRouteFoundError means both the graph and the corridor fallback missed for
// a mode. It is reported per-mode and never aborts the whole query.
type NoRouteFoundError struct {
	Mode   TransportType
	Reason string
}

func (e NoRouteFoundError) Error() string {
	return fmt.Sprintf("no %s route found: %s", e.Mode, e.Reason)
}

// ExternalServiceError wraps a failure of an optional collaborator. The
// feature degrades, the query proceeds.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s failed: %s", e.Service, e.Err)
}

func (e ExternalServiceError) Unwrap() error {
	return e.Err
}

// DataLoadError means a static dataset is missing or malformed. This is the
// only fatal kind - the process must refuse to start on a partial graph.
type DataLoadError struct {
	Path string
	Err  error
}

func (e DataLoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %s", e.Path, e.Err)
}

func (e DataLoadError) Unwrap() error {
	return e.Err
}
