package tool

import (
	"fmt"
	"sync"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/logging"
)

// Dispatcher routes a named function call to its handler. Resolution order is
// fixed: a locally registered tool wins and executes in process without any
// network contact; otherwise the call goes to a registered remote tool. A name
// with no handler on either side is an unrecoverable CodeUnknownTool error and
// performs no network call.
//
// There is no retry and no fallback between the two sides. A remote rejection
// (for example a missing provider credential) propagates to the caller with
// the backend's message unchanged.
type Dispatcher struct {
	mu     sync.RWMutex
	local  map[string]Tool
	remote map[string]Tool
	logger logging.Logger
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher(logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Dispatcher{
		local:  make(map[string]Tool),
		remote: make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a local tool. A local registration shadows a remote tool of
// the same name.
func (d *Dispatcher) Register(t Tool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.local[t.Name()]; exists {
		return fmt.Errorf("tool %q already registered", t.Name())
	}
	d.local[t.Name()] = t
	return nil
}

// RegisterRemote adds a tool whose execution happens on a remote provider.
func (d *Dispatcher) RegisterRemote(t Tool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.remote[t.Name()]; exists {
		return fmt.Errorf("remote tool %q already registered", t.Name())
	}
	d.remote[t.Name()] = t
	return nil
}

// Resolve returns the handler for name and whether it executes locally.
func (d *Dispatcher) Resolve(name string) (t Tool, local bool, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if t, ok := d.local[name]; ok {
		return t, true, true
	}
	if t, ok := d.remote[name]; ok {
		return t, false, true
	}
	return nil, false, false
}

// Tools returns all registered tools, local first.
func (d *Dispatcher) Tools() []Tool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Tool, 0, len(d.local)+len(d.remote))
	for _, t := range d.local {
		out = append(out, t)
	}
	for name, t := range d.remote {
		if _, shadowed := d.local[name]; !shadowed {
			out = append(out, t)
		}
	}
	return out
}

// Dispatch resolves name and executes the call. The returned error is a
// *ToolError; CodeUnknownTool means the run cannot continue.
func (d *Dispatcher) Dispatch(toolCtx *core.ToolContext, name string, args map[string]any) (any, error) {
	t, local, ok := d.Resolve(name)
	if !ok {
		d.logger.Error("tool.dispatch.unknown", "tool", name)
		return nil, NewToolError(name, "no local or remote handler registered for this tool", CodeUnknownTool)
	}

	d.logger.Debug("tool.dispatch", "tool", name, "local", local, "fc_id", toolCtx.FunctionCallID())
	return t.Call(toolCtx, args)
}
