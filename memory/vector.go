package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lumostack/agentkit/core"
)

// Embedder converts texts into vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIEmbedderOptions configures an OpenAIEmbedder.
type OpenAIEmbedderOptions struct {
	// BaseURL overrides the API endpoint, e.g. a local OpenAI-compatible
	// server exposing an embeddings route.
	BaseURL string
	// Model selects the embedding model.
	Model string
}

// OpenAIEmbedder produces embeddings through the OpenAI embeddings API or any
// endpoint speaking the same protocol.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an embedder backed by the OpenAI API.
func NewOpenAIEmbedder(apiKey string, optFns ...func(o *OpenAIEmbedderOptions)) *OpenAIEmbedder {
	opts := OpenAIEmbedderOptions{
		Model: string(openai.SmallEmbedding3),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(opts.Model),
	}
}

// Embed implements Embedder.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = d.Embedding
	}
	return out, nil
}

// vectorEntry pairs a stored memory with its embedding.
type vectorEntry struct {
	id       string
	content  string
	metadata map[string]any
	vector   []float32
}

// VectorStoreOptions configures a VectorStore.
type VectorStoreOptions struct {
	// ChunkSize splits stored content into word chunks before embedding.
	// Zero stores content unchunked.
	ChunkSize int
}

// VectorStore is a core.MemoryStore with embedding based retrieval. Stored
// content is embedded once at write time; Search embeds the query and ranks
// stored entries by cosine similarity. Everything lives in process memory.
type VectorStore struct {
	mu        sync.RWMutex
	embedder  Embedder
	chunkSize int
	memory    map[string]map[string]any // sessionID -> key -> value
	entries   map[string][]vectorEntry  // sessionID -> stored vectors
	seq       map[string]int            // sessionID -> id sequence
}

// NewVectorStore creates a vector memory store using the given embedder.
func NewVectorStore(embedder Embedder, optFns ...func(o *VectorStoreOptions)) *VectorStore {
	opts := VectorStoreOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &VectorStore{
		embedder:  embedder,
		chunkSize: opts.ChunkSize,
		memory:    make(map[string]map[string]any),
		entries:   make(map[string][]vectorEntry),
		seq:       make(map[string]int),
	}
}

// Get returns a shallow copy of the key/value memory map for the session.
func (s *VectorStore) Get(sessionID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.memory[sessionID]))
	for k, v := range s.memory[sessionID] {
		out[k] = v
	}
	return out, nil
}

// Put merges the provided delta map into the session's key/value memory.
func (s *VectorStore) Put(sessionID string, delta map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memory[sessionID]; !ok {
		s.memory[sessionID] = make(map[string]any)
	}
	for k, v := range delta {
		s.memory[sessionID][k] = v
	}
	return nil
}

// Store chunks, embeds and appends content for later retrieval.
func (s *VectorStore) Store(sessionID string, content string, metadata map[string]any) error {
	chunks := ChunkText(content, s.chunkSize)
	vectors, err := s.embedder.Embed(context.Background(), chunks)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, chunk := range chunks {
		id := fmt.Sprintf("mem_%d", s.seq[sessionID])
		s.seq[sessionID]++
		md := make(map[string]any, len(metadata))
		for k, v := range metadata {
			md[k] = v
		}
		s.entries[sessionID] = append(s.entries[sessionID], vectorEntry{
			id:       id,
			content:  chunk,
			metadata: md,
			vector:   vectors[i],
		})
	}
	return nil
}

// Search embeds the query and returns the top entries by cosine similarity.
func (s *VectorStore) Search(sessionID string, query string, limit int) ([]core.SearchResult, error) {
	s.mu.RLock()
	stored := make([]vectorEntry, len(s.entries[sessionID]))
	copy(stored, s.entries[sessionID])
	s.mu.RUnlock()

	if len(stored) == 0 || limit <= 0 {
		return []core.SearchResult{}, nil
	}

	vectors, err := s.embedder.Embed(context.Background(), []string{query})
	if err != nil {
		return nil, err
	}
	queryVec := vectors[0]

	results := make([]core.SearchResult, 0, len(stored))
	for _, entry := range stored {
		results = append(results, core.SearchResult{
			ID:       entry.id,
			Content:  entry.content,
			Score:    cosineSimilarity(queryVec, entry.vector),
			Metadata: entry.metadata,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Delete removes a stored entry by id.
func (s *VectorStore) Delete(sessionID string, memoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.entries[sessionID]
	for i, entry := range entries {
		if entry.id == memoryID {
			s.entries[sessionID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memory not found")
}

// ChunkText splits content into chunks of at most chunkSize whitespace
// separated words. chunkSize <= 0 returns the content as a single chunk.
func ChunkText(content string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{content}
	}
	words := strings.Fields(content)
	if len(words) <= chunkSize {
		return []string{content}
	}
	chunks := make([]string, 0, (len(words)+chunkSize-1)/chunkSize)
	for start := 0; start < len(words); start += chunkSize {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
