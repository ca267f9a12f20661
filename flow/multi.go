package flow

// MultiAgentFlow orchestrates an agent that may perform tool calls and
// transfer control to sub-agents, enabling hierarchical delegation. It
// extends BaseFlow with the delegation processor so the model learns which
// agents it can hand control to.
type MultiAgentFlow struct{ *BaseFlow }

// NewMultiAgentFlow creates a new delegating flow with default processors.
func NewMultiAgentFlow(agent FlowAgent) *MultiAgentFlow {
	baseFlow := NewBaseFlow(agent)

	baseFlow.AddRequestProcessor(NewInstructionsProcessor())
	baseFlow.AddRequestProcessor(NewRetrievalProcessor())
	baseFlow.AddRequestProcessor(NewDelegationProcessor())
	baseFlow.AddRequestProcessor(NewContentsProcessor())

	return &MultiAgentFlow{BaseFlow: baseFlow}
}
