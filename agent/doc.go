// Package agent contains first-class agent implementations and supporting
// utilities for building composable reasoning workflows in AgentKit:
//
//  1. Base lifecycle + hierarchy plumbing (BaseAgent)
//  2. Concrete coordination patterns (ChainAgent, ReActAgent)
//  3. Model-centric conversational / tool-calling agent (ModelAgent)
//
// Design principles:
//   - Minimal hidden global state, explicit wiring via Runner/RunContext
//   - Composability: agents can nest arbitrarily using SetSubAgents / FindAgent
//   - Observability: clear logging hooks at flow selection and tool execution
//   - Extensibility: embed BaseAgent; only implement Run plus any custom API
//
// Execution Model:
//   - An agent's Run receives a *core.RunContext (shared or cloned)
//   - Composite agents (chain / react) coordinate child Runs
//   - ModelAgent integrates with the model, tool and flow packages to stream events
//
// The package intentionally keeps persistence, model specifics and tool
// registry abstractions in their respective packages to avoid cyclic deps.
package agent
