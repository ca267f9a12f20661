// Package agentkit provides a high-level façade over the runner and service
// abstractions (sessions, memory & logging) enabling rapid construction of
// LLM agent applications. Most applications interact with this package by:
//  1. Creating an AgentKit via New() with a root agent (optionally overriding
//     default in-memory services)
//  2. Invoking the agent asynchronously (Invoke) or synchronously (InvokeSync)
//
// The façade delegates orchestration to runner.Runner while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; sessions and memory live in process memory and are discarded at
// exit.
package agentkit

import (
	"context"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/logging"
	"github.com/lumostack/agentkit/memory"
	"github.com/lumostack/agentkit/runner"
	"github.com/lumostack/agentkit/session"
)

// Options configures the AgentKit instance.
type Options struct {
	// EventBufferSize sets the channel buffer size for event processing.
	// Larger buffers reduce blocking but increase memory usage.
	EventBufferSize int

	// MaxModelCalls limits the number of model calls per run. Zero means
	// unlimited.
	MaxModelCalls int

	// Stores (defaults to in-memory implementations if not provided)
	SessionStore core.SessionStore
	MemoryStore  core.MemoryStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentKit is the high-level façade aggregating the runner and its services.
type AgentKit struct {
	opts   Options
	runner core.Runner
}

// New creates a new AgentKit instance for the given root agent with optional
// overrides. Any unset service is initialized with an in-memory implementation.
func New(agent core.Agent, optFns ...func(o *Options)) *AgentKit {
	opts := Options{
		EventBufferSize: 100,
		MaxModelCalls:   100,
		SessionStore:    session.NewInMemoryStore(),
		MemoryStore:     memory.NewInMemoryStore(),
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	r := runner.New(agent, func(o *runner.Options) {
		o.EventBufferSize = opts.EventBufferSize
		o.MaxModelCalls = opts.MaxModelCalls
		o.SessionStore = opts.SessionStore
		o.MemoryStore = opts.MemoryStore
		o.Logger = opts.Logger
	})

	return &AgentKit{opts: opts, runner: r}
}

// MemoryStore exposes the configured memory store, e.g. for seeding documents
// before a retrieval-augmented run.
func (k *AgentKit) MemoryStore() core.MemoryStore { return k.opts.MemoryStore }

// SessionStore exposes the configured session store.
func (k *AgentKit) SessionStore() core.SessionStore { return k.opts.SessionStore }

// Invoke starts an asynchronous run returning event & error channels.
func (k *AgentKit) Invoke(
	ctx context.Context,
	sessionID string,
	userContent core.Content,
) (string, <-chan core.Event, <-chan error, error) {
	return k.runner.Run(ctx, sessionID, userContent)
}

// InvokeSync is a synchronous helper that drains the async channels,
// accumulates events and returns the runID.
func (k *AgentKit) InvokeSync(
	ctx context.Context,
	sessionID string,
	userContent core.Content,
) (string, []core.Event, error) {
	runID, eventsCh, errorsCh, err := k.runner.Run(ctx, sessionID, userContent)
	if err != nil {
		return "", nil, err
	}

	var events []core.Event
	for {
		select {
		case <-ctx.Done():
			// Cancelled: return events collected so far
			return runID, events, ctx.Err()

		case event, ok := <-eventsCh:
			if !ok {
				// Events channel closed: check for terminal error
				select {
				case err := <-errorsCh:
					return runID, events, err
				default:
					return runID, events, nil
				}
			}
			events = append(events, event)

		case err := <-errorsCh:
			if err != nil {
				return runID, events, err
			}
		}
	}
}

// Cancel requests cooperative termination of an in-flight run.
func (k *AgentKit) Cancel(runID string) error { return k.runner.Cancel(runID) }
