package tool

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lumostack/agentkit/core"
)

// geoEndpoint resolves the caller's own coordinates from its public IP.
const geoEndpoint = "http://ip-api.com/json/"

// LocationResolver returns the caller's city, state and country.
type LocationResolver func(tc *core.ToolContext) (city, state, country string, err error)

// locationTool answers "where am I" queries without contacting the inference
// server or any tool provider. It is a client-side tool: the model only sees
// its declaration and the final observation.
type locationTool struct {
	resolve LocationResolver
}

// NewGetLocationTool constructs the get_location tool with IP-based
// geolocation.
func NewGetLocationTool() Tool {
	client := &http.Client{Timeout: 10 * time.Second}
	return &locationTool{resolve: func(tc *core.ToolContext) (string, string, string, error) {
		req, err := http.NewRequestWithContext(tc.Context(), http.MethodGet, geoEndpoint, nil)
		if err != nil {
			return "", "", "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", "", "", fmt.Errorf("geolocation lookup failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", "", "", err
		}
		parsed := gjson.ParseBytes(body)
		if parsed.Get("status").String() != "success" {
			return "", "", "", fmt.Errorf("geolocation lookup failed: %s", parsed.Get("message").String())
		}
		return parsed.Get("city").String(), parsed.Get("regionName").String(), parsed.Get("country").String(), nil
	}}
}

// NewGetLocationToolWithResolver constructs the get_location tool with a
// custom resolver. Used by tests and environments without outbound network.
func NewGetLocationToolWithResolver(resolve LocationResolver) Tool {
	return &locationTool{resolve: resolve}
}

func (t *locationTool) Name() string { return "get_location" }

func (t *locationTool) Description() string {
	return "Get the user's current location. Takes no arguments."
}

func (t *locationTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *locationTool) Call(tc *core.ToolContext, _ map[string]any) (any, error) {
	city, state, country, err := t.resolve(tc)
	if err != nil {
		return nil, NewToolError(t.Name(), err.Error(), CodeExecution)
	}
	return fmt.Sprintf("Your current location is: %s, %s, %s", city, state, country), nil
}
