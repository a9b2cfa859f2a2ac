package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/synapse-cli/internal/domain"
)

const finishReasonSafety = "SAFETY"

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text *string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Error          *apiError   `json:"error"`
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason"`
}

func newGenerateRequest(history []domain.Turn, params domain.LLMParameters) generateRequest {
	contents := make([]content, 0, len(history))
	for _, turn := range history {
		text := turn.Text
		contents = append(contents, content{Role: string(turn.Role), Parts: []part{{Text: &text}}})
	}

	return generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     params.Temperature,
			TopP:            params.TopP,
			TopK:            params.TopK,
			MaxOutputTokens: params.MaxOutputTokens,
		},
	}
}

// parseResponse maps a response body to a result without a status code.
// An unsuccessful result with an empty message means the body carried no
// usable explanation.
func parseResponse(body []byte) domain.GenerationResult {
	var payload generateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.GenerationResult{ErrorMessage: fmt.Sprintf("JSON parsing error: %v", err)}
	}

	if payload.Error != nil {
		return domain.GenerationResult{ErrorMessage: payload.Error.Message}
	}

	if len(payload.Candidates) > 0 {
		first := payload.Candidates[0]
		if first.Content != nil && len(first.Content.Parts) > 0 {
			if text := first.Content.Parts[0].Text; text != nil {
				return domain.GenerationResult{Success: true, GeneratedText: *text}
			}
			return domain.GenerationResult{}
		}
		if first.FinishReason == finishReasonSafety {
			return domain.GenerationResult{ErrorMessage: "Response blocked due to safety reasons."}
		}
		return domain.GenerationResult{}
	}

	if payload.PromptFeedback != nil && payload.PromptFeedback.BlockReason != "" {
		return domain.GenerationResult{ErrorMessage: "Prompt blocked due to safety reasons: " + payload.PromptFeedback.BlockReason}
	}

	return domain.GenerationResult{ErrorMessage: "Unexpected API response format."}
}
