package agent

import (
	"fmt"

	"github.com/lumostack/agentkit/core"
)

// ChainAgent coordinates the execution of multiple child agents in sequence,
// implementing the prompt chaining pattern: each step runs with the
// accumulated session state, so a step's output (saved under its output key)
// feeds the instructions of the steps after it.
//
// ChainAgent is ideal for:
//   - Multi-step text processing pipelines
//   - Workflows requiring a specific execution order
//   - Complex tasks broken into specialized subtasks
type ChainAgent struct {
	BaseAgent
	steps []core.Agent
}

// NewChainAgent creates a new sequential execution coordinator. The provided
// steps run in order; they also become sub-agents of the chain.
func NewChainAgent(name string, steps ...core.Agent) *ChainAgent {
	a := &ChainAgent{
		BaseAgent: NewBaseAgent(name),
		steps:     steps,
	}
	_ = a.SetSubAgents(steps...)
	return a
}

// Run implements core.Agent. It executes each step in order with the shared
// run context; the first error stops further processing.
func (a *ChainAgent) Run(runCtx *core.RunContext) error {
	for i, step := range a.steps {
		runCtx.LogDebug("chain.step.start", "chain", a.Name(), "step", step.Name(), "index", i)

		stepCtx := runCtx.WithBranch(buildBranchPath(runCtx.Branch, step.Name()))
		stepCtx.Agent = core.AgentInfo{Name: step.Name(), Type: "model"}

		if err := step.Run(stepCtx); err != nil {
			return fmt.Errorf("chain execution failed at step %s: %w", step.Name(), err)
		}
	}

	return nil
}
