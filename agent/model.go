package agent

import (
	"encoding/json"
	"fmt"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/flow"
	"github.com/lumostack/agentkit/model"
	"github.com/lumostack/agentkit/tool"
)

// ModelAgentOptions configures a ModelAgent instance.
//
// Use functional options with NewModelAgent to override defaults.
type ModelAgentOptions struct {
	Instruction           Instruction
	EnableStreaming       bool
	EnableFunctionCalling bool
	AllowTransfer         bool
	OutputKey             string
	MaxHistoryMessages    int
	RetrievalTopK         int
	Sampling              model.SamplingConfig
	Tools                 []tool.Tool
	Dispatcher            *tool.Dispatcher
}

// ModelAgent integrates with language models to provide conversational and
// tool-calling behavior.
//
// This agent implementation supports:
//   - Natural language conversation through system prompts
//   - Function calling routed through a tool dispatcher
//   - Streaming responses for incremental consumption
//   - Session state persistence via output keys
//   - Template-based prompt customization
//   - Retrieval augmentation from a memory store
//
// ModelAgent embeds BaseAgent for standard lifecycle and hierarchy management.
type ModelAgent struct {
	BaseAgent
	llm                   model.Model
	instruction           Instruction
	dispatcher            *tool.Dispatcher
	enableFunctionCalling bool
	enableStreaming       bool
	allowTransfer         bool
	outputKey             string
	maxHistoryMessages    int
	retrievalTopK         int
	sampling              model.SamplingConfig
}

// NewModelAgent creates a new model-based agent.
//
// Defaults: streaming and function calling enabled, transfers allowed, a
// 20-message history window, greedy decoding and no retrieval augmentation.
// When transfers are allowed the transfer_to_agent tool is registered
// automatically.
func NewModelAgent(name string, llm model.Model, optFns ...func(o *ModelAgentOptions)) *ModelAgent {
	opts := ModelAgentOptions{
		Instruction:           NewInstructionFromText(fmt.Sprintf("You are %s, a helpful AI assistant.", name)),
		EnableStreaming:       true,
		EnableFunctionCalling: true,
		AllowTransfer:         true,
		MaxHistoryMessages:    20,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = tool.NewDispatcher(nil)
	}
	for _, t := range opts.Tools {
		if err := dispatcher.Register(t); err != nil {
			panic(fmt.Sprintf("agent %s: %v", name, err))
		}
	}
	if opts.AllowTransfer {
		if _, _, ok := dispatcher.Resolve("transfer_to_agent"); !ok {
			_ = dispatcher.Register(tool.NewTransferToAgentTool())
		}
	}

	return &ModelAgent{
		BaseAgent:             NewBaseAgent(name),
		llm:                   llm,
		instruction:           opts.Instruction,
		dispatcher:            dispatcher,
		enableStreaming:       opts.EnableStreaming,
		enableFunctionCalling: opts.EnableFunctionCalling,
		allowTransfer:         opts.AllowTransfer,
		outputKey:             opts.OutputKey,
		maxHistoryMessages:    opts.MaxHistoryMessages,
		retrievalTopK:         opts.RetrievalTopK,
		sampling:              opts.Sampling,
	}
}

// RegisterTool adds a local tool to the agent's dispatcher.
func (a *ModelAgent) RegisterTool(t tool.Tool) error {
	return a.dispatcher.Register(t)
}

// RegisterRemoteTool adds a remote-provider tool to the agent's dispatcher.
func (a *ModelAgent) RegisterRemoteTool(t tool.Tool) error {
	return a.dispatcher.RegisterRemote(t)
}

// HasTool reports whether a tool name resolves through the dispatcher.
func (a *ModelAgent) HasTool(name string) bool {
	_, _, ok := a.dispatcher.Resolve(name)
	return ok
}

// Model returns the language model driving this agent.
func (a *ModelAgent) Model() model.Model { return a.llm }

// Dispatcher returns the tool dispatcher for function calling.
func (a *ModelAgent) Dispatcher() *tool.Dispatcher { return a.dispatcher }

// Delegates returns the child agents usable as transfer targets.
func (a *ModelAgent) Delegates() []flow.FlowAgent {
	subAgents := a.SubAgents()
	flowAgents := make([]flow.FlowAgent, 0, len(subAgents))
	for _, subAgent := range subAgents {
		if flowAgent, ok := subAgent.(flow.FlowAgent); ok {
			flowAgents = append(flowAgents, flowAgent)
		}
	}
	return flowAgents
}

// FunctionCallingEnabled reports whether tools are declared to the model.
func (a *ModelAgent) FunctionCallingEnabled() bool { return a.enableFunctionCalling }

// StreamingEnabled reports whether partial responses are requested.
func (a *ModelAgent) StreamingEnabled() bool { return a.enableStreaming }

// TransferEnabled reports whether control may be handed to a sub-agent.
func (a *ModelAgent) TransferEnabled() bool { return a.allowTransfer }

// OutputKey returns the session state key for saving the final response.
func (a *ModelAgent) OutputKey() string { return a.outputKey }

// MaxHistoryMessages bounds the conversation history sent to the model.
func (a *ModelAgent) MaxHistoryMessages() int { return a.maxHistoryMessages }

// RetrievalTopK bounds how many memory hits augment a request.
func (a *ModelAgent) RetrievalTopK() int { return a.retrievalTopK }

// Sampling returns the decoding parameters for every model request.
func (a *ModelAgent) Sampling() model.SamplingConfig { return a.sampling }

// ResolveInstructions produces the final system prompt by resolving static or
// dynamic instruction sources.
func (a *ModelAgent) ResolveInstructions(runCtx *core.RunContext) (string, error) {
	return a.instruction.Resolve(runCtx)
}

// ExecuteTool deserializes JSON arguments and routes the named call through
// the dispatcher.
func (a *ModelAgent) ExecuteTool(toolCtx *core.ToolContext, toolName string, args string) (interface{}, error) {
	argsMap := make(map[string]interface{})
	if args != "" {
		if err := json.Unmarshal([]byte(args), &argsMap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal args: %w", err)
		}
	}

	return a.dispatcher.Dispatch(toolCtx, toolName, argsMap)
}

// TransferToAgent delegates execution to a named descendant agent using the
// same run context (shared session state, emit channel).
func (a *ModelAgent) TransferToAgent(runCtx *core.RunContext, agentName string) error {
	targetAgent := a.FindAgent(agentName)
	if targetAgent == nil {
		return fmt.Errorf("agent '%s' not found in hierarchy", agentName)
	}

	childCtx := runCtx.WithBranch(buildBranchPath(runCtx.Branch, agentName))
	childCtx.Agent = core.AgentInfo{Name: agentName, Type: "model"}

	return targetAgent.Run(childCtx)
}

// Run implements core.Agent using the flow selector to choose an execution
// strategy, then streams flow events to the parent run context.
func (a *ModelAgent) Run(runCtx *core.RunContext) error {
	runCtx.LogDebug("agent.run.start", "agent", a.Name(), "run", runCtx.RunID)

	fl := flow.NewSelector().SelectFlow(a)

	runCtx.LogDebug("agent.flow.selected", "agent", a.Name(), "flow", fmt.Sprintf("%T", fl))

	eventChan, err := fl.Execute(runCtx)
	if err != nil {
		runCtx.LogError("agent.flow.execute.error", "agent", a.Name(), "error", err.Error())
		return fmt.Errorf("flow execution failed: %w", err)
	}

	for event := range eventChan {
		if err := runCtx.EmitEvent(event); err != nil {
			runCtx.LogWarn("agent.run.context_done", "agent", a.Name(), "error", err.Error())
			return err
		}

		role := ""
		if event.Content != nil {
			role = event.Content.Role
		}
		runCtx.LogDebug("agent.event.forward",
			"agent", a.Name(),
			"event_id", event.ID,
			"role", role,
			"fn_calls", len(event.GetFunctionCalls()),
		)
	}

	runCtx.LogDebug("agent.run.complete", "agent", a.Name())

	return nil
}
