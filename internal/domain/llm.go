package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.7
	DefaultTopP            = 1.0
	DefaultTopK            = 0
	DefaultMaxOutputTokens = 800
	DefaultMaxHistoryTurns = 5
)

type LLMParameters struct {
	Model           string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	MaxHistoryTurns int
	Instructions    string
}

func DefaultLLMParameters() LLMParameters {
	return LLMParameters{
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		TopP:            DefaultTopP,
		TopK:            DefaultTopK,
		MaxOutputTokens: DefaultMaxOutputTokens,
		MaxHistoryTurns: DefaultMaxHistoryTurns,
	}
}

func (p LLMParameters) Validate() error {
	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", p.Temperature)
	}
	if p.TopP < 0 || p.TopP > 1 {
		return fmt.Errorf("top_p %.2f out of range [0, 1]", p.TopP)
	}
	if p.TopK < 0 {
		return fmt.Errorf("top_k must not be negative")
	}
	if p.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must not be negative")
	}
	if p.MaxHistoryTurns < 0 {
		return fmt.Errorf("max_history_turns must not be negative")
	}

	return nil
}

func (p LLMParameters) HistoryLimit() int {
	return HistoryLimit(p.MaxHistoryTurns)
}
