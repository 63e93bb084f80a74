package memory

import "fmt"

// PolicyKind selects a context-bounding strategy.
type PolicyKind string

const (
	// PolicyFullHistory presents every turn verbatim. Costly for long runs.
	PolicyFullHistory PolicyKind = "full_history"

	// PolicySlidingWindow presents the last K turns verbatim.
	PolicySlidingWindow PolicyKind = "sliding_window"

	// PolicySummarized compresses older turns into a running digest and
	// keeps the most recent turns verbatim, bounded by a token budget.
	PolicySummarized PolicyKind = "summarized"
)

// Policy bounds the context presented to the planner. Whatever the run
// length, the view a policy produces stays bounded (except FullHistory,
// which is explicit about being unbounded).
type Policy struct {
	Kind PolicyKind `json:"kind"`

	// Window is the number of verbatim turns for PolicySlidingWindow.
	Window int `json:"window,omitempty"`

	// Budget is the token budget for PolicySummarized.
	Budget int `json:"budget,omitempty"`
}

// FullHistory returns the policy that shows all turns.
func FullHistory() Policy {
	return Policy{Kind: PolicyFullHistory}
}

// SlidingWindow returns the policy that shows the last k turns.
func SlidingWindow(k int) Policy {
	return Policy{Kind: PolicySlidingWindow, Window: k}
}

// Summarized returns the policy that digests older turns within a token budget.
func Summarized(budget int) Policy {
	return Policy{Kind: PolicySummarized, Budget: budget}
}

// Validate checks the policy parameters.
func (p Policy) Validate() error {
	switch p.Kind {
	case PolicyFullHistory:
		return nil
	case PolicySlidingWindow:
		if p.Window < 0 {
			return fmt.Errorf("%w: window must be >= 0, got %d", ErrInvalidPolicy, p.Window)
		}
		return nil
	case PolicySummarized:
		if p.Budget <= 0 {
			return fmt.Errorf("%w: budget must be > 0, got %d", ErrInvalidPolicy, p.Budget)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPolicy, p.Kind)
	}
}

// String returns a short description of the policy.
func (p Policy) String() string {
	switch p.Kind {
	case PolicySlidingWindow:
		return fmt.Sprintf("sliding_window(%d)", p.Window)
	case PolicySummarized:
		return fmt.Sprintf("summarized(%d)", p.Budget)
	default:
		return string(p.Kind)
	}
}
