// Package config loads AgentKit settings from environment variables into a
// typed record. A .env file in the working directory is honored when present
// so demo setups need no exported shell state. Missing or malformed required
// values are fatal at startup; nothing in this package retries or falls back.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lumostack/agentkit/model"
)

// Environment variable names recognized by Load.
const (
	EnvInferenceServerURL = "INFERENCE_SERVER_URL"
	EnvInferenceModelID   = "INFERENCE_MODEL_ID"
	EnvInferenceAPIKey    = "INFERENCE_API_KEY"
	EnvSearchAPIKey       = "TAVILY_SEARCH_API_KEY"
	EnvTemperature        = "TEMPERATURE"
	EnvTopP               = "TOP_P"
	EnvMaxTokens          = "MAX_TOKENS"
	EnvStream             = "STREAM"
	EnvVectorProvider     = "VDB_PROVIDER"
	EnvEmbeddingModel     = "VDB_EMBEDDING"
	EnvRetrievalTopK      = "RAG_TOP_K"
	EnvChunkSize          = "VDB_CHUNK_SIZE"
)

// Settings is the typed configuration record for the toolkit. All values have
// documented defaults; see .env.example at the repository root.
type Settings struct {
	// BaseURL is the OpenAI-compatible inference endpoint
	// (e.g. a local ramalama / llama.cpp server).
	BaseURL string
	// ModelID selects the served model.
	ModelID string
	// APIKey is passed through to the inference endpoint. May be empty for
	// unauthenticated local servers.
	APIKey string
	// SearchAPIKey is the search-provider credential forwarded with remote
	// web_search tool calls.
	SearchAPIKey string
	// Sampling holds the decoding parameters for every request.
	Sampling model.SamplingConfig
	// Stream enables incremental event consumption.
	Stream bool
	// VectorProvider names the vector memory backend ("inline" keeps
	// everything in process memory).
	VectorProvider string
	// EmbeddingModel is the embedding model used for vector memory.
	EmbeddingModel string
	// RetrievalTopK bounds how many memory hits augment a request.
	RetrievalTopK int
	// ChunkSize is the ingestion chunk size in tokens.
	ChunkSize int
}

// Defaults mirror the demo environment: a local OpenAI-compatible server,
// greedy decoding and inline vector memory.
const (
	DefaultBaseURL        = "http://localhost:8080/v1"
	DefaultModelID        = "qwen2.5:7b"
	DefaultTemperature    = 0.0
	DefaultTopP           = 0.95
	DefaultMaxTokens      = 512
	DefaultVectorProvider = "inline"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultRetrievalTopK  = 5
	DefaultChunkSize      = 512
)

// Load reads settings from the environment, first merging a .env file if one
// exists (existing environment variables win). A parse failure of any numeric
// value is returned as a fatal configuration error.
func Load() (*Settings, error) {
	// Ignore absence of the file; it is optional by design.
	_ = godotenv.Load()

	s := &Settings{
		BaseURL:        getEnv(EnvInferenceServerURL, DefaultBaseURL),
		ModelID:        getEnv(EnvInferenceModelID, DefaultModelID),
		APIKey:         os.Getenv(EnvInferenceAPIKey),
		SearchAPIKey:   os.Getenv(EnvSearchAPIKey),
		Stream:         ParseStreamFlag(getEnv(EnvStream, "False")),
		VectorProvider: getEnv(EnvVectorProvider, DefaultVectorProvider),
		EmbeddingModel: getEnv(EnvEmbeddingModel, DefaultEmbeddingModel),
	}

	var err error
	if s.Sampling.Temperature, err = getFloat(EnvTemperature, DefaultTemperature); err != nil {
		return nil, err
	}
	if s.Sampling.TopP, err = getFloat(EnvTopP, DefaultTopP); err != nil {
		return nil, err
	}
	maxTokens, err := getInt(EnvMaxTokens, DefaultMaxTokens)
	if err != nil {
		return nil, err
	}
	s.Sampling.MaxTokens = int64(maxTokens)

	if s.RetrievalTopK, err = getInt(EnvRetrievalTopK, DefaultRetrievalTopK); err != nil {
		return nil, err
	}
	if s.ChunkSize, err = getInt(EnvChunkSize, DefaultChunkSize); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate reports the first invalid setting. Invalid configuration is fatal
// at startup; there is no degraded mode.
func (s *Settings) Validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("config: %s must not be empty", EnvInferenceServerURL)
	}
	if s.ModelID == "" {
		return fmt.Errorf("config: %s must not be empty", EnvInferenceModelID)
	}
	if s.Sampling.Temperature < 0 {
		return fmt.Errorf("config: %s must be >= 0, got %v", EnvTemperature, s.Sampling.Temperature)
	}
	if s.Sampling.TopP < 0 || s.Sampling.TopP > 1 {
		return fmt.Errorf("config: %s must be within [0,1], got %v", EnvTopP, s.Sampling.TopP)
	}
	if s.Sampling.MaxTokens <= 0 {
		return fmt.Errorf("config: %s must be > 0, got %d", EnvMaxTokens, s.Sampling.MaxTokens)
	}
	if s.RetrievalTopK <= 0 {
		return fmt.Errorf("config: %s must be > 0, got %d", EnvRetrievalTopK, s.RetrievalTopK)
	}
	return nil
}

// ParseStreamFlag resolves the streaming flag the way the demo environment
// files define it: false only for the literal "False", true for anything else
// (including the empty string).
func ParseStreamFlag(v string) bool { return v != "False" }

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
