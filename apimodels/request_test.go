package apimodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRequestUnmarshal(t *testing.T) {
	tests := []struct {
		body     string
		userText string
		mock     bool
	}{
		{`{"userText":"I have a headache","mock":true}`, "I have a headache", true},
		{`{"userText":"cough"}`, "cough", false},
		{`{"userText":42,"mock":"true"}`, "", false},
		{`{"userText":null,"mock":1}`, "", false},
		{`{"mock":false}`, "", false},
		{`{}`, "", false},
	}

	for _, tt := range tests {
		var req AnalysisRequest
		require.NoError(t, json.Unmarshal([]byte(tt.body), &req), tt.body)
		assert.Equal(t, tt.userText, req.UserText, tt.body)
		assert.Equal(t, tt.mock, req.Mock, tt.body)
	}
}

func TestAnalysisRequestRejectsNonObject(t *testing.T) {
	var req AnalysisRequest
	assert.Error(t, json.Unmarshal([]byte(`["userText"]`), &req))
}

func TestFailureOmitsUnknownStatus(t *testing.T) {
	data, err := json.Marshal(Failure("boom", 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"error":"boom"}`, string(data))

	data, err = json.Marshal(Failure("quota", 429))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"error":"quota","status":429}`, string(data))
}

func TestSuccessEncodesEmptySequences(t *testing.T) {
	data, err := json.Marshal(Success(AnalysisResult{
		Differential: []DifferentialItem{},
		HomeCare:     []string{},
		RedFlags:     []string{},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"data":{"summary":"","differential":[],"homeCare":[],"redFlags":[],"disclaimer":""}}`, string(data))
}
