package analyzer

import (
	"net/http"
	"regexp"

	"github.com/sozercan/symptom-ai/internal/llm"
)

type FailureCategory string

const (
	FailureAuth             FailureCategory = "auth"
	FailureQuota            FailureCategory = "quota"
	FailureModelUnavailable FailureCategory = "model_unavailable"
	FailureUnknown          FailureCategory = "unknown"
)

const (
	MessageInvalidAPIKey    = "Invalid API key. Check the server's model API key configuration."
	MessageQuotaExceeded    = "The model API quota was exceeded or requests are being rate limited. Please try again later."
	MessageModelUnavailable = "The configured model is not available. Check the server's model name configuration."
	MessageGeneric          = "Something went wrong while analyzing your message. Please try again."
)

var (
	apiKeyPattern  = regexp.MustCompile(`(?i)api[ _-]?key`)
	quotaPattern   = regexp.MustCompile(`(?i)quota|rate[ _-]?limit|too many requests|resource[ _]exhausted`)
	modelPattern   = regexp.MustCompile(`(?i)model`)
	missingPattern = regexp.MustCompile(`(?i)not|unknown`)
)

// Failure is what the caller learns about an upstream error.
type Failure struct {
	Category FailureCategory
	Message  string

	// HTTPStatus is the status of our own reply
	HTTPStatus int

	// UpstreamStatus is the provider's status code, 0 when unknown
	UpstreamStatus int
}

// ClassifyFailure maps an upstream status and error detail to a category.
// Checks run in priority order: auth, quota, model availability.
func ClassifyFailure(status int, detail string) Failure {
	f := Failure{
		Category:       FailureUnknown,
		Message:        MessageGeneric,
		HTTPStatus:     http.StatusInternalServerError,
		UpstreamStatus: status,
	}

	switch {
	case status == http.StatusUnauthorized || apiKeyPattern.MatchString(detail):
		f.Category, f.Message = FailureAuth, MessageInvalidAPIKey
	case status == http.StatusTooManyRequests || quotaPattern.MatchString(detail):
		f.Category, f.Message = FailureQuota, MessageQuotaExceeded
	case modelPattern.MatchString(detail) && missingPattern.MatchString(detail):
		f.Category, f.Message = FailureModelUnavailable, MessageModelUnavailable
	}

	return f
}

// Classify reads the upstream status (if any) and message from err.
func Classify(err error) Failure {
	if err == nil {
		return ClassifyFailure(0, "")
	}
	return ClassifyFailure(llm.StatusCode(err), err.Error())
}
