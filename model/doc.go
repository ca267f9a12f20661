// Package model defines the normalized request/response surface between
// AgentKit flows and language model providers. Provider adapters (openai,
// anthropic) translate these structures into vendor SDK calls and back so
// downstream logic never needs per-provider branching.
package model
