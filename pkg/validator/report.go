package validator

import "errors"

// Issue is one failure in a Report.
type Issue struct {
	NodeID string `json:"node_id,omitempty" yaml:"node_id,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
}

// Report is the serialisable outcome of a validation run.
type Report struct {
	Valid  bool    `json:"valid" yaml:"valid"`
	Errors []Issue `json:"errors" yaml:"errors"`
}

// NewReport summarises errs, as returned by ValidateAll through Errors.
func NewReport(errs []error) Report {
	r := Report{Valid: len(errs) == 0, Errors: []Issue{}}
	for _, err := range errs {
		issue := Issue{Reason: err.Error()}
		var ve *ValidationError
		if errors.As(err, &ve) {
			issue = Issue{NodeID: ve.NodeID, Reason: ve.Reason}
		}
		r.Errors = append(r.Errors, issue)
	}
	return r
}
