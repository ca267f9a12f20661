package agent

import (
	"errors"
	"fmt"

	"github.com/lumostack/agentkit/core"
)

// ErrEscalated is returned internally when a child agent signals escalation.
var ErrEscalated = errors.New("child agent escalated")

// ReActAgent coordinates a reason/act/observe loop around a child agent,
// typically a tool-calling ModelAgent. Each iteration the child reasons about
// the task, optionally acts through tools (the observations land in the
// shared session) and produces a response. The loop ends when the finish
// condition matches the response text, the child escalates, or the iteration
// budget runs out.
type ReActAgent struct {
	BaseAgent
	child    core.Agent
	maxIters int
	finish   func(output string) bool
}

// ReActOption configures a ReActAgent.
type ReActOption func(*ReActAgent)

// WithMaxIters caps the number of reason/act iterations. Default 10.
func WithMaxIters(n int) ReActOption {
	return func(a *ReActAgent) { a.maxIters = n }
}

// WithFinishCondition sets the predicate evaluated against the text of each
// iteration's final response; returning true terminates the loop.
func WithFinishCondition(pred func(output string) bool) ReActOption {
	return func(a *ReActAgent) { a.finish = pred }
}

// NewReActAgent constructs a looping coordinator around a child agent.
func NewReActAgent(name string, child core.Agent, opts ...ReActOption) *ReActAgent {
	a := &ReActAgent{
		BaseAgent: NewBaseAgent(name),
		child:     child,
		maxIters:  10,
	}
	for _, o := range opts {
		o(a)
	}
	_ = a.SetSubAgents(child)
	return a
}

// Run implements core.Agent performing iterative execution with escalation
// detection. Escalation terminates the loop early without error.
func (a *ReActAgent) Run(runCtx *core.RunContext) error {
	for i := 0; i < a.maxIters; i++ {
		select {
		case <-runCtx.Done():
			return runCtx.Err()
		default:
		}

		runCtx.LogDebug("react.iteration.start", "agent", a.Name(), "iteration", i+1)

		output, err := a.runChild(runCtx)
		if errors.Is(err, ErrEscalated) {
			runCtx.LogInfo("react.escalated", "agent", a.Name(), "iteration", i+1)
			return nil
		}
		if err != nil {
			return fmt.Errorf("iteration %d failed for agent %s: %w", i+1, a.child.Name(), err)
		}

		if a.finish != nil && a.finish(output) {
			runCtx.LogDebug("react.finished", "agent", a.Name(), "iteration", i+1)
			return nil
		}
	}

	runCtx.LogDebug("react.iterations_exhausted", "agent", a.Name(), "max_iters", a.maxIters)

	return nil
}

// runChild executes the child while intercepting emitted events to detect
// escalation flags and to capture the final response text for the finish
// condition, forwarding everything to the parent context.
func (a *ReActAgent) runChild(runCtx *core.RunContext) (string, error) {
	interceptChan := make(chan core.Event, 10)
	resumeChan := make(chan struct{}, 10)
	childCtx := runCtx.NewChildContext(interceptChan, resumeChan, buildBranchPath(runCtx.Branch, a.child.Name()))

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- a.child.Run(childCtx)
	}()

	var lastOutput string
	for {
		select {
		case event, ok := <-interceptChan:
			if !ok {
				return lastOutput, <-done
			}

			if event.IsFinalResponse() && event.Content != nil {
				lastOutput = event.Content.Text()
			}

			escalated := event.Actions.Escalate != nil && *event.Actions.Escalate

			if err := runCtx.EmitEvent(event); err != nil {
				return lastOutput, err
			}

			if escalated {
				runCtx.LogDebug("react.escalation_detected", "agent", a.Name())
				<-done
				return lastOutput, ErrEscalated
			}

			// Relay the parent's persistence signal to the child
			if !event.IsPartial() {
				if err := runCtx.WaitForResume(); err != nil {
					return lastOutput, err
				}
				select {
				case resumeChan <- struct{}{}:
				case <-runCtx.Done():
					return lastOutput, runCtx.Err()
				}
			}

		case err := <-done:
			// Drain events the child emitted right before finishing
			for {
				select {
				case event := <-interceptChan:
					if event.IsFinalResponse() && event.Content != nil {
						lastOutput = event.Content.Text()
					}
					if emitErr := runCtx.EmitEvent(event); emitErr != nil {
						return lastOutput, emitErr
					}
					if !event.IsPartial() {
						if waitErr := runCtx.WaitForResume(); waitErr != nil {
							return lastOutput, waitErr
						}
					}
				default:
					return lastOutput, err
				}
			}

		case <-runCtx.Done():
			return lastOutput, runCtx.Err()
		}
	}
}
