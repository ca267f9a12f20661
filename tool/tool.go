// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (local functions, remote tool providers) with
// schema validated arguments, consistent error handling and rich metadata for
// model guidance.
package tool

import (
	"fmt"

	"github.com/lumostack/agentkit/core"
	"github.com/lumostack/agentkit/internal/util"
)

// Tool defines the interface for extending agent capabilities with external functions.
//
// Tools can be registered with agents to enable function calling, allowing
// agents to perform actions beyond text generation such as API calls,
// calculations or any other programmatic operations. All tools have access to
// a ToolContext for session state, agent flow control and memory.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	// Names should follow function naming conventions (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	// This description is provided to the model to help it decide when and how
	// to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	// The schema is used for argument validation and function call declarations.
	Parameters() map[string]interface{}

	// Call executes the tool with structured arguments and ToolContext.
	// Arguments are parsed from JSON and validated against the tool's schema.
	Call(toolCtx *core.ToolContext, args map[string]interface{}) (interface{}, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// Error codes carried by ToolError. Dispatch treats CodeUnknownTool as
// unrecoverable; everything else is surfaced to the model as an observation.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeExecution       = "EXECUTION_ERROR"
	CodeUnknownTool     = "UNKNOWN_TOOL"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeRemote          = "REMOTE_ERROR"
)

// ToolError represents errors that occur during tool resolution or execution.
type ToolError struct {
	Tool    string      `json:"tool"`              // Name of the tool that failed
	Message string      `json:"message"`           // Error message
	Code    string      `json:"code"`              // Error code for categorization
	Details interface{} `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}

// IsUnknownTool reports whether err is a ToolError for an unresolvable tool
// name. Such errors abort the run instead of being fed back to the model.
func IsUnknownTool(err error) bool {
	te, ok := err.(*ToolError)
	return ok && te.Code == CodeUnknownTool
}
