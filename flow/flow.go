// Package flow provides the turn execution pipeline for AgentKit agents.
//
// A flow drives the request -> model -> tool loop of a single agent run.
// Pluggable request and response processors keep concerns such as instruction
// resolution, history assembly and retrieval augmentation out of the core
// loop and easy to extend.
package flow

import (
	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/model"
	"github.com/lumostack/agentkit/tool"
)

// Flow defines the interface for agent execution flows.
//
// A flow orchestrates the complete execution pipeline of an agent, from
// processing the initial request to generating the final response. Different
// flow implementations provide different capabilities such as simple
// execution or delegation to sub-agents.
type Flow interface {
	// Execute runs the flow with the given context and returns a channel of
	// events that represent the execution progress.
	Execute(runCtx *core.RunContext) (<-chan core.Event, error)
}

// FlowAgent defines the interface agents must implement to work with flows.
//
// It gives flows access to agent capabilities without exposing the full agent
// implementation.
type FlowAgent interface {
	// Name returns the agent's display name.
	Name() string

	// Model returns the language model driving this agent.
	Model() model.Model

	// ResolveInstructions produces the system prompt for the current turn.
	ResolveInstructions(runCtx *core.RunContext) (string, error)

	// Dispatcher returns the tool dispatcher for function calling.
	Dispatcher() *tool.Dispatcher

	// Delegates returns the child agents this agent may hand control to.
	Delegates() []FlowAgent

	// FunctionCallingEnabled reports whether tools are declared to the model.
	FunctionCallingEnabled() bool

	// StreamingEnabled reports whether partial responses are requested.
	StreamingEnabled() bool

	// TransferEnabled reports whether control may be handed to a sub-agent.
	TransferEnabled() bool

	// OutputKey returns the session state key for saving the final response,
	// or "" when the response is not persisted to state.
	OutputKey() string

	// MaxHistoryMessages bounds the conversation history sent to the model.
	MaxHistoryMessages() int

	// RetrievalTopK bounds how many memory hits augment a request. Zero or
	// negative disables retrieval augmentation.
	RetrievalTopK() int

	// Sampling returns the decoding parameters for every model request.
	Sampling() model.SamplingConfig

	// ExecuteTool routes a named tool call with raw JSON arguments.
	ExecuteTool(toolCtx *core.ToolContext, toolName string, args string) (interface{}, error)

	// TransferToAgent hands execution to a named sub-agent.
	TransferToAgent(runCtx *core.RunContext, agentName string) error
}

// RequestProcessor processes the request before sending it to the model.
type RequestProcessor interface {
	// Name returns the processor's identifier.
	Name() string
	// ProcessRequest modifies the request before model execution.
	ProcessRequest(runCtx *core.RunContext, req *model.Request, agent FlowAgent) error
}

// ResponseProcessor processes the response after receiving it from the model.
type ResponseProcessor interface {
	// Name returns the processor's identifier.
	Name() string
	// ProcessResponse handles a model response chunk.
	ProcessResponse(runCtx *core.RunContext, resp *model.Response, agent FlowAgent) error
}
