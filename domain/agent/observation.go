package agent

import (
	"encoding/json"
	"time"
)

// ObservationStatus indicates whether the observed action succeeded.
type ObservationStatus string

const (
	ObservationSuccess ObservationStatus = "success"
	ObservationFailure ObservationStatus = "failure"
)

// FailureKind classifies a failed observation for the planner.
type FailureKind string

const (
	FailureTransient        FailureKind = "transient"         // Retryable (network-class) error
	FailurePermanent        FailureKind = "permanent"         // Capability explicitly rejected
	FailureTimedOut         FailureKind = "timed_out"         // Execution exceeded its deadline
	FailureRetriesExhausted FailureKind = "retries_exhausted" // Transient failure survived all retries
	FailureSchemaValidation FailureKind = "schema_validation" // Arguments violated the tool schema
	FailureUnknownTool      FailureKind = "unknown_tool"      // Tool not present in the registry
)

// Observation is the recorded outcome of a turn's action.
// Failed tool calls are observations too - the planner reasons about them.
type Observation struct {
	Status  ObservationStatus `json:"status"`
	Payload json.RawMessage   `json:"payload,omitempty"`
	Failure *FailureDetail    `json:"failure,omitempty"`
	Latency time.Duration     `json:"latency"`
	Cached  bool              `json:"cached,omitempty"`
}

// FailureDetail carries structured failure information.
type FailureDetail struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	// Violations lists every violated schema field, not just the first,
	// so the planner gets complete feedback in one round-trip.
	Violations []string `json:"violations,omitempty"`
}

// NewSuccessObservation creates a successful observation.
func NewSuccessObservation(payload json.RawMessage, latency time.Duration) Observation {
	return Observation{
		Status:  ObservationSuccess,
		Payload: payload,
		Latency: latency,
	}
}

// NewFailureObservation creates a failed observation.
func NewFailureObservation(kind FailureKind, message string, latency time.Duration) Observation {
	return Observation{
		Status:  ObservationFailure,
		Failure: &FailureDetail{Kind: kind, Message: message},
		Latency: latency,
	}
}

// NewValidationObservation creates a failed observation listing schema violations.
func NewValidationObservation(message string, violations []string) Observation {
	return Observation{
		Status: ObservationFailure,
		Failure: &FailureDetail{
			Kind:       FailureSchemaValidation,
			Message:    message,
			Violations: violations,
		},
	}
}

// IsFailure returns true if the observation records a failure.
func (o Observation) IsFailure() bool {
	return o.Status == ObservationFailure
}

// FailureIs returns true if the observation failed with the given kind.
func (o Observation) FailureIs(kind FailureKind) bool {
	return o.Failure != nil && o.Failure.Kind == kind
}
