package error

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status  int               `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"` // client message
	Errors  map[string]string `json:"errors,omitempty"`
}

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "入力内容に誤りがあります。",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "リクエストの形式が正しくありません。",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "サーバー内部でエラーが発生しました。",
	}

	// TooManyRequests is returned by the rate limiter
	TooManyRequests = ErrorResponse{
		Status:  http.StatusTooManyRequests,
		Code:    "ERROR-004", // TOO_MANY_REQUESTS
		Message: "しばらく時間をおいてから再度お試しください。",
	}

	// NotFound is used for unknown routes and path ids that do not parse
	NotFound = ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ERROR-005", // NOT_FOUND
		Message: "ページが見つかりません。",
	}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ValidationError collects field level messages produced by service side checks
// (cross-field rules the binding tags cannot express).
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (v *ValidationError) Add(field, message string) {
	if _, exists := v.Fields[field]; exists {
		return
	}
	v.Fields[field] = message
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ",")
}

// Response renders the error with the first field message (alphabetical) as the summary.
func (v *ValidationError) Response() ErrorResponse {
	resp := ValidationFailed
	resp.Errors = make(map[string]string, len(v.Fields))
	keys := make([]string, 0, len(v.Fields))
	for k, msg := range v.Fields {
		resp.Errors[k] = msg
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		resp.Message = v.Fields[keys[0]]
	}
	return resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Response(), true
	}

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}
