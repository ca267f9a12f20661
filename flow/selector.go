package flow

// Selector determines which flow to use based on agent capabilities.
type Selector struct{}

// NewSelector creates a new flow selector.
func NewSelector() *Selector { return &Selector{} }

// SelectFlow chooses the appropriate flow for the given agent:
//   - SingleAgentFlow for isolated agents without transfers or delegates
//   - MultiAgentFlow for agents with transfer capabilities or delegates
func (s *Selector) SelectFlow(agent FlowAgent) Flow {
	if !agent.TransferEnabled() && len(agent.Delegates()) == 0 {
		return NewSingleAgentFlow(agent)
	}
	return NewMultiAgentFlow(agent)
}
