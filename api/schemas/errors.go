package schemas

import "fmt"

// -- Error Taxonomy --
//
// Three kinds cover every failure the pipeline can produce. None of them is
// retried or partially satisfied by the core; hosting layers map them to
// exit or status codes.

// UnsupportedModelError reports an identifier outside the relevant
// enumeration. It is raised before any network call.
type UnsupportedModelError struct {
	Name string
	Role ModelRole
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported %s model %q", e.Role, e.Name)
}

// ProviderError reports a failure inside the ResponseClient collaborator:
// authentication, transport, or provider-side rejection. It propagates to
// the caller unchanged.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// AnalysisParseError reports a judge response that is not valid JSON or is
// missing a required field, for the operations that demand a trustworthy
// typed result. Goal inference never raises it; that path falls back to the
// trimmed raw text instead.
type AnalysisParseError struct {
	Operation string
	Err       error
}

func (e *AnalysisParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Operation, e.Err)
}

func (e *AnalysisParseError) Unwrap() error { return e.Err }
