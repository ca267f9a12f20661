package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplingConfig_Strategy(t *testing.T) {
	tests := []struct {
		name string
		cfg  SamplingConfig
		want SamplingStrategy
	}{
		{
			name: "zero temperature is greedy regardless of top-p",
			cfg:  SamplingConfig{Temperature: 0.0, TopP: 0.95},
			want: SamplingStrategy{Type: StrategyGreedy},
		},
		{
			name: "zero value is greedy",
			cfg:  SamplingConfig{},
			want: SamplingStrategy{Type: StrategyGreedy},
		},
		{
			name: "positive temperature selects top-p with exact values",
			cfg:  SamplingConfig{Temperature: 0.7, TopP: 0.9},
			want: SamplingStrategy{Type: StrategyTopP, Temperature: 0.7, TopP: 0.9},
		},
		{
			name: "top-p carries configured values unchanged",
			cfg:  SamplingConfig{Temperature: 1.0, TopP: 0.1},
			want: SamplingStrategy{Type: StrategyTopP, Temperature: 1.0, TopP: 0.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Strategy())
		})
	}
}

func TestSamplingConfig_IsGreedy(t *testing.T) {
	assert.True(t, SamplingConfig{Temperature: 0}.IsGreedy())
	assert.False(t, SamplingConfig{Temperature: 0.5, TopP: 0.9}.IsGreedy())
}
