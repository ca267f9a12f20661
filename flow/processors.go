package flow

import (
	"fmt"
	"strings"

	"github.com/lumostack/agentkit/core"
	internalutil "github.com/lumostack/agentkit/internal/util"
	"github.com/lumostack/agentkit/model"
)

// InstructionsProcessor handles system prompt and instruction processing.
type InstructionsProcessor struct{}

// NewInstructionsProcessor creates a new instructions processor.
func NewInstructionsProcessor() *InstructionsProcessor { return &InstructionsProcessor{} }

// Name returns the processor's identifier.
func (p *InstructionsProcessor) Name() string { return "instructions" }

// ProcessRequest resolves the agent instructions and applies template
// substitution from session state.
func (p *InstructionsProcessor) ProcessRequest(runCtx *core.RunContext, req *model.Request, agent FlowAgent) error {
	instructions, err := agent.ResolveInstructions(runCtx)
	if err != nil {
		return fmt.Errorf("failed to resolve instruction: %w", err)
	}

	runCtx.LogDebug("flow.instruction.resolved", "agent", agent.Name(), "length", len(instructions))

	if runCtx.Session != nil && runCtx.Session.State != nil {
		var tplErr error
		req.Instructions, tplErr = internalutil.RenderTemplate(instructions, runCtx.Session.State)
		if tplErr != nil {
			return fmt.Errorf("failed to render template: %w", tplErr)
		}
	} else {
		req.Instructions = instructions
	}

	return nil
}

// RetrievalProcessor augments the request with memory hits relevant to the
// latest user input. Without a memory store (or with retrieval disabled on
// the agent) it is a no-op.
type RetrievalProcessor struct{}

// NewRetrievalProcessor creates a new retrieval augmentation processor.
func NewRetrievalProcessor() *RetrievalProcessor { return &RetrievalProcessor{} }

// Name returns the processor's identifier.
func (p *RetrievalProcessor) Name() string { return "retrieval" }

// ProcessRequest searches memory for the user input and appends the top hits
// to the system instructions as grounding context.
func (p *RetrievalProcessor) ProcessRequest(runCtx *core.RunContext, req *model.Request, agent FlowAgent) error {
	topK := agent.RetrievalTopK()
	if topK <= 0 || runCtx.MemoryStore == nil {
		return nil
	}

	query := runCtx.UserContent.Text()
	if query == "" {
		return nil
	}

	hits, err := runCtx.SearchMemory(query, topK)
	if err != nil {
		return fmt.Errorf("memory search failed: %w", err)
	}
	if len(hits) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("\n\nUse the following retrieved context when it is relevant:\n")
	for _, hit := range hits {
		fmt.Fprintf(&b, "- %s\n", hit.Content)
	}

	req.Instructions += b.String()

	runCtx.LogDebug("flow.retrieval.augmented", "agent", agent.Name(), "hits", len(hits))

	return nil
}

// DelegationProcessor advertises the agent's delegates so the model knows the
// names it can transfer control to.
type DelegationProcessor struct{}

// NewDelegationProcessor creates a new delegation processor.
func NewDelegationProcessor() *DelegationProcessor { return &DelegationProcessor{} }

// Name returns the processor's identifier.
func (p *DelegationProcessor) Name() string { return "delegation" }

// ProcessRequest appends the delegate directory to the system instructions.
func (p *DelegationProcessor) ProcessRequest(runCtx *core.RunContext, req *model.Request, agent FlowAgent) error {
	delegates := agent.Delegates()
	if !agent.TransferEnabled() || len(delegates) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("\n\nYou can hand a task to a specialized agent with the transfer_to_agent tool. Available agents:\n")
	for _, d := range delegates {
		fmt.Fprintf(&b, "- %s\n", d.Name())
	}

	req.Instructions += b.String()

	return nil
}

// ContentsProcessor assembles the conversation contents sent to the model.
type ContentsProcessor struct{}

// NewContentsProcessor creates a new contents processor.
func NewContentsProcessor() *ContentsProcessor { return &ContentsProcessor{} }

// Name returns the processor's identifier.
func (p *ContentsProcessor) Name() string { return "contents" }

// ProcessRequest places the system prompt first then appends the bounded
// conversation history.
func (p *ContentsProcessor) ProcessRequest(runCtx *core.RunContext, req *model.Request, agent FlowAgent) error {
	contents := []core.Content{{
		Role:  "system",
		Parts: []core.Part{core.TextPart{Text: req.Instructions}},
	}}

	if runCtx.Session != nil {
		events := runCtx.Session.GetConversationHistory()
		if max := agent.MaxHistoryMessages(); len(events) > max {
			events = events[len(events)-max:]
		}

		for _, ev := range events {
			if ev.Content != nil && len(ev.Content.Parts) > 0 {
				contents = append(contents, *ev.Content)
			}
		}
	}

	req.Contents = contents
	return nil
}
