package apimodels

type AnalysisResult struct {
	// Plain-language overview of the user's message
	Summary string `json:"summary"`

	// Possible explanations, most likely first
	Differential []DifferentialItem `json:"differential"`

	// Self-care suggestions
	HomeCare []string `json:"homeCare"`

	// Symptoms that warrant urgent care
	RedFlags []string `json:"redFlags"`

	Disclaimer string `json:"disclaimer"`
}

type DifferentialItem struct {
	Condition string `json:"condition"`
	Why       string `json:"why"`
}

// APIResponse is the envelope for every /analyze reply.
type APIResponse struct {
	OK    bool            `json:"ok"`
	Data  *AnalysisResult `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`

	// Upstream status code, when the failure came from the model provider
	Status int `json:"status,omitempty"`
}

func Success(result AnalysisResult) APIResponse {
	return APIResponse{OK: true, Data: &result}
}

func Failure(message string, status int) APIResponse {
	return APIResponse{OK: false, Error: message, Status: status}
}
