// Package session houses concrete implementations of core.SessionStore.
// The interface itself (and the Session struct) live in the core package to
// centralize domain contracts. Sessions are held in process memory for the
// lifetime of the program and discarded at exit; there is no persistence
// across restarts.
package session
