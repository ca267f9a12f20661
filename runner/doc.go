// Package runner implements the orchestration layer of AgentKit.
//
// The Runner manages the lifecycle of a conversation run: it resolves the
// root agent, creates run contexts, streams events to the caller, applies
// event side effects (session state deltas) and persists conversation
// history. A run is driven by the session/turn loop: the user turn is
// appended first, then agent events flow through the runner which persists
// each non-partial event before signalling the agent to continue.
//
// Responsibilities (abridged):
//   - Run orchestration (async streaming, sync drain via the facade)
//   - Event processing and side effect application
//   - Session history persistence
//   - Run lifecycle management and cancellation
package runner
