package model

// Strategy type identifiers for SamplingConfig.Strategy.
const (
	StrategyGreedy = "greedy"
	StrategyTopP   = "top_p"
)

// SamplingConfig carries the decoding parameters sent with every model
// request. The zero value selects greedy decoding.
type SamplingConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int64   `json:"max_tokens"`
}

// SamplingStrategy is the resolved decoding strategy. Greedy carries no
// parameters; top-p carries exactly the configured temperature and top-p.
type SamplingStrategy struct {
	Type        string  `json:"type"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// Strategy resolves the decoding strategy: greedy whenever Temperature is
// zero regardless of TopP, otherwise top-p sampling with the configured
// temperature and top-p values.
func (c SamplingConfig) Strategy() SamplingStrategy {
	if c.Temperature == 0 {
		return SamplingStrategy{Type: StrategyGreedy}
	}
	return SamplingStrategy{Type: StrategyTopP, Temperature: c.Temperature, TopP: c.TopP}
}

// IsGreedy reports whether greedy decoding is selected.
func (c SamplingConfig) IsGreedy() bool { return c.Strategy().Type == StrategyGreedy }
