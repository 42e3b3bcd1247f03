package evaluation

import "fmt"

// Failure reasons carried on the external error payload. The resolver
// currently raises primary_model_failed and evaluation_error; no_consensus
// and grounding_failed remain part of the wire contract for callers.
const (
	ReasonPrimaryModelFailed = "primary_model_failed"
	ReasonNoConsensus        = "no_consensus"
	ReasonEvaluationError    = "evaluation_error"
	ReasonGroundingFailed    = "grounding_failed"
)

// ResolveError is the terminal failure of a resolution, shaped for the
// external failure payload.
type ResolveError struct {
	Reason  string
	Details string

	PrimaryScore        *float64
	PrimaryConfidence   *float64
	SecondaryScore      *float64
	SecondaryConfidence *float64

	Err error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Details)
}

func (e *ResolveError) Unwrap() error { return e.Err }
