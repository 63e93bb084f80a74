package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/agent"
)

// View is a read-only projection of the turn log, constructed fresh for
// each planner query. It references turns, it does not own them.
type View struct {
	// Turns are the verbatim turns, oldest first.
	Turns []agent.Turn

	// Digest summarizes turns elided by the policy.
	Digest string

	// Elided is the number of turns represented only by the digest.
	Elided int
}

// Summarizer compresses elided turns into a running digest.
type Summarizer interface {
	// Summarize folds turns into digest, producing a new digest.
	Summarize(ctx context.Context, digest string, turns []agent.Turn) (string, error)
}

// TokenCounter measures text for the summarized policy's budget.
type TokenCounter interface {
	Count(text string) int
}

// BuildView projects the log through the policy. The summarizer and counter
// are only consulted for PolicySummarized; either may be nil otherwise.
func BuildView(ctx context.Context, log *Log, p Policy, s Summarizer, tc TokenCounter) (View, error) {
	if err := p.Validate(); err != nil {
		return View{}, err
	}

	turns := log.Turns()

	switch p.Kind {
	case PolicyFullHistory:
		return View{Turns: turns}, nil

	case PolicySlidingWindow:
		if len(turns) > p.Window {
			elided := len(turns) - p.Window
			return View{Turns: turns[elided:], Elided: elided}, nil
		}
		return View{Turns: turns}, nil

	case PolicySummarized:
		return buildSummarized(ctx, turns, p.Budget, s, tc)

	default:
		return View{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidPolicy, p.Kind)
	}
}

// buildSummarized keeps the newest turns verbatim while they fit the budget
// and folds everything older into the digest.
func buildSummarized(ctx context.Context, turns []agent.Turn, budget int, s Summarizer, tc TokenCounter) (View, error) {
	if s == nil {
		return View{}, ErrNoSummarizer
	}
	if tc == nil {
		tc = EstimateCounter{}
	}

	// Walk newest to oldest, keeping turns while the budget holds.
	// Half the budget is reserved for the digest of whatever is elided.
	verbatimBudget := budget
	cut := len(turns)
	used := 0
	for i := len(turns) - 1; i >= 0; i-- {
		cost := tc.Count(FormatTurn(turns[i]))
		if used+cost > verbatimBudget {
			break
		}
		used += cost
		cut = i
	}

	if cut == 0 {
		return View{Turns: turns}, nil
	}

	// Leave room for the digest by dropping verbatim turns until at most
	// half the budget is spent on them.
	for cut < len(turns) && used > budget/2 {
		used -= tc.Count(FormatTurn(turns[cut]))
		cut++
	}

	elided := turns[:cut]
	digest, err := s.Summarize(ctx, "", elided)
	if err != nil {
		return View{}, fmt.Errorf("summarize elided turns: %w", err)
	}
	digest = trimToBudget(digest, budget-used, tc)

	return View{
		Turns:  turns[cut:],
		Digest: digest,
		Elided: len(elided),
	}, nil
}

// trimToBudget cuts text until the counter agrees it fits.
func trimToBudget(text string, budget int, tc TokenCounter) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(text)
	for tc.Count(string(runes)) > budget && len(runes) > 0 {
		runes = runes[:len(runes)*3/4]
	}
	return string(runes)
}

// FormatTurn renders one turn as prompt text. Both the view budget and the
// planner prompt use this rendering so counted size matches presented size.
func FormatTurn(t agent.Turn) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn %d: ", t.Index)

	switch t.Action.Type {
	case agent.ActionToolCall:
		if tc := t.Action.ToolCall; tc != nil {
			fmt.Fprintf(&sb, "called %s with %s", tc.Tool, string(tc.Args))
			if tc.Reason != "" {
				fmt.Fprintf(&sb, " (reason: %s)", tc.Reason)
			}
		}
	case agent.ActionFinalAnswer:
		if fa := t.Action.FinalAnswer; fa != nil {
			fmt.Fprintf(&sb, "answered %s", string(fa.Content))
		}
	case agent.ActionClarification:
		if c := t.Action.Clarification; c != nil {
			fmt.Fprintf(&sb, "asked %q", c.Question)
		}
	}

	if o := t.Observation; o != nil {
		if o.IsFailure() {
			fmt.Fprintf(&sb, " -> %s (%s): %s", o.Status, o.Failure.Kind, o.Failure.Message)
			for _, v := range o.Failure.Violations {
				fmt.Fprintf(&sb, "; %s", v)
			}
		} else {
			fmt.Fprintf(&sb, " -> %s: %s", o.Status, string(o.Payload))
		}
	}
	return sb.String()
}

// HeadlineSummarizer is a deterministic fallback that renders each elided
// turn as a single line. It keeps runs working without a reasoning backend
// and gives tests a stable digest.
type HeadlineSummarizer struct{}

// Summarize implements Summarizer.
func (HeadlineSummarizer) Summarize(_ context.Context, digest string, turns []agent.Turn) (string, error) {
	lines := make([]string, 0, len(turns)+1)
	if digest != "" {
		lines = append(lines, digest)
	}
	for _, t := range turns {
		line := FormatTurn(t)
		if len(line) > 120 {
			line = line[:120] + "..."
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// EstimateCounter approximates tokens as one per four characters, the
// conventional rough ratio for English text.
type EstimateCounter struct{}

// Count implements TokenCounter.
func (EstimateCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
