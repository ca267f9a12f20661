// Package memory contains concrete MemoryStore implementations. The store
// interface and SearchResult type reside in the core package; depend on
// core.MemoryStore in your code and select an implementation (keyword or
// vector) at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// retrieval backends to be added without introducing dependency cycles.
package memory
