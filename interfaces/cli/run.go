package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	api "github.com/ShivanshDubey1704/agentic-ai-assistant/interfaces/api"
)

// runOptions holds options for the run command.
type runOptions struct {
	configPath  string
	goal        string
	maxTurns    int
	timeout     time.Duration
	interactive bool
	jsonOutput  bool
	verbose     bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [goal]",
		Short: "Execute a goal",
		Long: `Execute a goal using the configured planner and tool packs.

The loop runs until the planner produces a final answer, the turn budget
is spent, planning fails, or the context is cancelled. With --interactive,
clarification questions from the planner are answered on stdin and the
run is retried with the answer folded into the goal.

Examples:
  # Run with a config file and goal as argument
  assistant run -c config.yaml "What is 21 + 21?"

  # Run with a custom timeout and turn budget
  assistant run -c config.yaml --timeout 5m --max-turns 10 "Summarize the report"

  # Answer clarification questions interactively
  assistant run -c config.yaml -i "Book the usual meeting room"

  # Emit the full result as JSON, including the transcript
  assistant run -c config.yaml --json "What time is it in Tokyo?"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.goal = args[0]
			return a.runGoal(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().IntVar(&opts.maxTurns, "max-turns", 0, "Turn budget (overrides config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Execution timeout")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Answer clarification questions on stdin")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the turn transcript")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runGoal executes a goal with the given options.
func (a *App) runGoal(ctx context.Context, opts *runOptions) error {
	loader := api.NewConfigLoader()
	config, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.maxTurns > 0 {
		config.Agent.MaxTurns = opts.maxTurns
	}

	built, err := api.NewConfigBuilder(config).Build()
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer func() { _ = built.Cleanup() }()

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	goal := opts.goal
	reader := bufio.NewReader(a.stdin)

	for {
		startTime := time.Now()
		result, err := built.Engine.Execute(ctx, goal)
		duration := time.Since(startTime)

		if err != nil {
			return fmt.Errorf("run failed to start: %w", err)
		}

		if result.Reason == api.TerminationClarification && opts.interactive {
			fmt.Fprintf(a.stdout, "The assistant asks: %s\n> ", result.Clarification)
			answer, rerr := reader.ReadString('\n')
			if rerr != nil {
				return fmt.Errorf("reading clarification answer: %w", rerr)
			}
			goal = fmt.Sprintf("%s\n\nClarification: %s\nAnswer: %s",
				goal, result.Clarification, strings.TrimSpace(answer))
			continue
		}

		return a.printResult(result, duration, opts)
	}
}

// printResult renders a terminal result.
func (a *App) printResult(result *api.Result, duration time.Duration, opts *runOptions) error {
	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(a.stdout, "Run %s\n", result.RunID)
	fmt.Fprintf(a.stdout, "  Reason: %s\n", result.Reason)
	fmt.Fprintf(a.stdout, "  Turns: %d\n", result.Turns)
	fmt.Fprintf(a.stdout, "  Duration: %s\n", duration)

	if opts.verbose {
		for _, turn := range result.Transcript {
			fmt.Fprintf(a.stdout, "  [%d] %s\n", turn.Index, describeTurn(turn))
		}
	}

	switch result.Reason {
	case api.TerminationCompleted:
		if result.Summary != "" {
			fmt.Fprintf(a.stdout, "  Summary: %s\n", result.Summary)
		}
		if len(result.Answer) > 0 {
			fmt.Fprintf(a.stdout, "  Answer: %s\n", formatJSON(result.Answer))
		}
	case api.TerminationClarification:
		fmt.Fprintf(a.stdout, "  Question: %s\n", result.Clarification)
	case api.TerminationFailed:
		if result.Err != "" {
			fmt.Fprintf(a.stdout, "  Error: %s\n", result.Err)
		}
	}

	return nil
}

// describeTurn renders a one-line summary of a turn.
func describeTurn(turn api.Turn) string {
	switch {
	case turn.Action.ToolCall != nil:
		status := "pending"
		if turn.Observation != nil {
			status = string(turn.Observation.Status)
			if turn.Observation.Failure != nil {
				status += " (" + string(turn.Observation.Failure.Kind) + ")"
			}
		}
		return fmt.Sprintf("%s -> %s", turn.Action.ToolCall.Tool, status)
	case turn.Action.FinalAnswer != nil:
		return "final answer"
	case turn.Action.Clarification != nil:
		return "clarification: " + turn.Action.Clarification.Question
	default:
		return string(turn.Action.Type)
	}
}

// formatJSON formats JSON for display.
func formatJSON(data json.RawMessage) string {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	formatted, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return string(data)
	}
	return strings.TrimSpace(string(formatted))
}
