package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/validator"
)

// SetupTestRouter creates a test Gin router without middleware
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// Register custom validators for testing
	_ = validator.RegisterAll()

	return gin.New()
}

// TestRequest describes one HTTP call. Body is sent as JSON, Form as
// application/x-www-form-urlencoded. Token becomes a Bearer header.
type TestRequest struct {
	Method  string
	URL     string
	Body    interface{}
	Form    url.Values
	Token   string
	Headers map[string]string
	Cookies []*http.Cookie
}

// ExecuteRequest executes a test HTTP request and returns the response
func ExecuteRequest(t *testing.T, router http.Handler, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	contentType := ""
	switch {
	case req.Form != nil:
		bodyReader = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
		contentType = "application/json"
	}

	httpReq := httptest.NewRequest(req.Method, req.URL, bodyReader)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	for _, c := range req.Cookies {
		httpReq.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)

	return recorder
}

// ParseResponse parses the JSON response body into the given struct
func ParseResponse(t *testing.T, recorder *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(recorder.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
}

// ResponseCookie returns the named cookie set by the response, or nil.
func ResponseCookie(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range recorder.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FlashValue returns the decoded value of a flash cookie set by the response.
func FlashValue(recorder *httptest.ResponseRecorder, name string) string {
	c := ResponseCookie(recorder, name)
	if c == nil {
		return ""
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return v
}

// WithPrincipal stands in for the authentication middleware.
func WithPrincipal(p sharedContext.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		sharedContext.SetPrincipal(c, p)
		c.Next()
	}
}

// MultipartFile is one file part of a multipart request.
type MultipartFile struct {
	Field    string
	Filename string
	Content  []byte
}

// ExecuteMultipart sends fields and files as multipart/form-data.
func ExecuteMultipart(t *testing.T, router http.Handler, method, target string, fields url.Values, files ...MultipartFile) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			if err := writer.WriteField(key, v); err != nil {
				t.Fatalf("Failed to write field %s: %v", key, err)
			}
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	httpReq := httptest.NewRequest(method, target, &body)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)
	return recorder
}
