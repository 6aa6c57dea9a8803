package analyzer

import (
	"bytes"
	"encoding/json"

	"github.com/sozercan/symptom-ai/apimodels"
)

const DefaultDisclaimer = "This information is for educational purposes only and is not a substitute " +
	"for professional medical advice, diagnosis, or treatment. If you are worried about your health, " +
	"contact a qualified clinician or your local emergency number."

// Normalize turns the model's raw reply into a fully populated
// AnalysisResult. It never fails: text that is not JSON becomes the summary
// of an otherwise default result, and every field of a JSON object is
// decoded on its own with a default when missing or of the wrong type.
func Normalize(raw string) apimodels.AnalysisResult {
	result := defaultResult()

	if !json.Valid([]byte(raw)) {
		result.Summary = raw
		return result
	}

	// Arrays, scalars and null keep every default.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return result
	}

	if s, ok := decodeString(fields["summary"]); ok {
		result.Summary = s
	}
	if items, ok := decodeArray(fields["differential"]); ok {
		result.Differential = make([]apimodels.DifferentialItem, 0, len(items))
		for _, item := range items {
			result.Differential = append(result.Differential, decodeDifferentialItem(item))
		}
	}
	if items, ok := decodeArray(fields["homeCare"]); ok {
		result.HomeCare = decodeStrings(items)
	}
	if items, ok := decodeArray(fields["redFlags"]); ok {
		result.RedFlags = decodeStrings(items)
	}
	if s, ok := decodeString(fields["disclaimer"]); ok && s != "" {
		result.Disclaimer = s
	}

	return result
}

func defaultResult() apimodels.AnalysisResult {
	return apimodels.AnalysisResult{
		Differential: []apimodels.DifferentialItem{},
		HomeCare:     []string{},
		RedFlags:     []string{},
		Disclaimer:   DefaultDisclaimer,
	}
}

func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeArray reports false for null and any non-array value.
func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func decodeDifferentialItem(raw json.RawMessage) apimodels.DifferentialItem {
	if s, ok := decodeString(raw); ok {
		return apimodels.DifferentialItem{Condition: s}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return apimodels.DifferentialItem{}
	}

	var item apimodels.DifferentialItem
	item.Condition, _ = decodeString(fields["condition"])
	item.Why, _ = decodeString(fields["why"])
	return item
}

// decodeStrings keeps string elements as they are and renders every other
// element as compact JSON text, so the element count is preserved.
func decodeStrings(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := decodeString(item); ok {
			out = append(out, s)
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, item); err != nil {
			out = append(out, string(item))
			continue
		}
		out = append(out, buf.String())
	}
	return out
}
