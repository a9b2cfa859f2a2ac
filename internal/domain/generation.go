package domain

// GenerationResult is what the generation collaborator hands back to a node.
// Transport problems are already folded into ErrorMessage.
type GenerationResult struct {
	Success        bool
	GeneratedText  string
	ErrorMessage   string
	HTTPStatusCode int
}

func GenerationFailure(message string, statusCode int) GenerationResult {
	return GenerationResult{ErrorMessage: message, HTTPStatusCode: statusCode}
}

func (r GenerationResult) Record() Record {
	if r.Success {
		return SuccessResponse(r.GeneratedText, r.HTTPStatusCode)
	}
	return FailureResponse(r.ErrorMessage, r.HTTPStatusCode)
}
