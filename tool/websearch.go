package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lumostack/agentkit/core"
)

// defaultSearchEndpoint is the Tavily search API.
const defaultSearchEndpoint = "https://api.tavily.com/search"

// WebSearchOptions configures the web_search tool.
type WebSearchOptions struct {
	// Endpoint overrides the search provider URL.
	Endpoint string
	// MaxResults caps returned hits.
	MaxResults int
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// webSearchTool forwards queries to a hosted search provider. The provider
// credential travels in the Authorization header of every call; when it is
// absent the provider rejects the request and that rejection is returned to
// the caller with the backend's message unchanged. No retry, no fallback.
type webSearchTool struct {
	endpoint   string
	apiKey     string
	maxResults int
	client     *http.Client
}

// NewWebSearchTool constructs the web_search remote tool. apiKey may be empty;
// the provider, not this client, decides what an unauthenticated call gets.
func NewWebSearchTool(apiKey string, optFns ...func(o *WebSearchOptions)) Tool {
	opts := WebSearchOptions{
		Endpoint:   defaultSearchEndpoint,
		MaxResults: 5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &webSearchTool{
		endpoint:   opts.Endpoint,
		apiKey:     apiKey,
		maxResults: opts.MaxResults,
		client:     client,
	}
}

func (t *webSearchTool) Name() string { return "web_search" }

func (t *webSearchTool) Description() string {
	return "Search the web for current information. Returns titles, URLs and content snippets."
}

func (t *webSearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *webSearchTool) Call(tc *core.ToolContext, args map[string]any) (any, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return nil, NewToolError(t.Name(), "missing required field 'query'", CodeValidation)
	}

	payload, err := json.Marshal(map[string]any{
		"query":       query,
		"max_results": t.maxResults,
	})
	if err != nil {
		return nil, NewToolError(t.Name(), err.Error(), CodeExecution)
	}

	req, err := http.NewRequestWithContext(tc.Context(), http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, NewToolError(t.Name(), err.Error(), CodeExecution)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, NewToolError(t.Name(), fmt.Sprintf("search request failed: %v", err), CodeRemote)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewToolError(t.Name(), err.Error(), CodeRemote)
	}

	if resp.StatusCode != http.StatusOK {
		code := CodeRemote
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			code = CodeUnauthenticated
		}
		return nil, NewToolError(t.Name(), remoteErrorMessage(body), code)
	}

	return formatSearchResults(body, t.maxResults), nil
}

// remoteErrorMessage extracts the provider's own message from an error body so
// it reaches the caller verbatim. Falls back to the raw body.
func remoteErrorMessage(body []byte) string {
	parsed := gjson.ParseBytes(body)
	for _, path := range []string{"error.message", "error", "detail", "message"} {
		if v := parsed.Get(path); v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return strings.TrimSpace(string(body))
}

// formatSearchResults renders provider hits as a compact observation text.
func formatSearchResults(body []byte, max int) string {
	results := gjson.GetBytes(body, "results")
	if !results.Exists() || len(results.Array()) == 0 {
		return "No results found."
	}

	var b strings.Builder
	for i, r := range results.Array() {
		if i >= max {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n",
			i+1,
			r.Get("title").String(),
			r.Get("url").String(),
			r.Get("content").String(),
		)
	}
	return strings.TrimSpace(b.String())
}
