package analyzer

import "github.com/sozercan/symptom-ai/apimodels"

// MockResult is the canned reply used in mock mode. It echoes userText and
// never touches the model.
func MockResult(userText string) apimodels.AnalysisResult {
	return apimodels.AnalysisResult{
		Summary: "Echo: " + userText,
		Differential: []apimodels.DifferentialItem{
			{Condition: "Common cold", Why: "Mock mode"},
		},
		HomeCare:   []string{"Rest", "Fluids"},
		RedFlags:   []string{"High fever > 39.4°C"},
		Disclaimer: "Demo only.",
	}
}
