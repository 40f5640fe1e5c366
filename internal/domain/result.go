package domain

// Result is the outcome of a validation that did not raise.
// An empty Errors slice means the request is valid.
type Result struct {
	Errors []*Violation `json:"errors" yaml:"errors"`
}

// Valid reports whether no violations were found
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}
