package apimodels

import "encoding/json"

type AnalysisRequest struct {
	// UserText is the free-text message describing the user's symptoms
	UserText string `json:"userText"`

	// Mock asks the server for a canned result without calling the model
	Mock bool `json:"mock,omitempty"`
}

// UnmarshalJSON accepts any JSON types for the known fields. A userText that
// is not a string decodes to "" and mock is only on for the literal true.
func (r *AnalysisRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserText any `json:"userText"`
		Mock     any `json:"mock"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.UserText, _ = raw.UserText.(string)
	r.Mock, _ = raw.Mock.(bool)
	return nil
}
