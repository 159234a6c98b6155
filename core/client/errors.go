package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// maxMessageBytes bounds messages taken from unstructured error bodies.
const maxMessageBytes = 512

// Kind classifies an API failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindAuthentication
	KindPermission
	KindNotFound
	KindConflict
	KindRateLimit
	KindServer
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindAuthentication:
		return "authentication"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	case KindConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *APIError of the same kind.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrAuthentication = errors.New("authentication failed")
	ErrPermission     = errors.New("permission denied")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrServer         = errors.New("server error")
	ErrConnection     = errors.New("connection failed")

	// ErrCircuitOpen is returned without contacting the server while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

var kindSentinels = map[Kind]error{
	KindInvalidRequest: ErrInvalidRequest,
	KindAuthentication: ErrAuthentication,
	KindPermission:     ErrPermission,
	KindNotFound:       ErrNotFound,
	KindConflict:       ErrConflict,
	KindRateLimit:      ErrRateLimit,
	KindServer:         ErrServer,
	KindConnection:     ErrConnection,
}

// APIError describes a failed call.
type APIError struct {
	// Status is the HTTP status, zero for connection failures.
	Status int
	// Code is the platform error code, e.g. ATLAS-404-00-005.
	Code string
	// Message is the platform error message.
	Message string
	// Kind classifies the failure.
	Kind Kind
	// RequestID is the id sent with the failed request.
	RequestID string
	// Err is the underlying transport error, if any.
	Err error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("catalog api ")
	b.WriteString(e.Kind.String())
	if e.Status > 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Code != "" {
		b.WriteString(" ")
		b.WriteString(e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *APIError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// Retryable reports whether the failure is worth another attempt.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindConnection, KindRateLimit:
		return true
	case KindServer:
		switch e.Status {
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindInvalidRequest
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusForbidden:
		return KindPermission
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindInvalidRequest
	default:
		return KindUnknown
	}
}

// errorBody covers both error shapes returned by the platform.
type errorBody struct {
	ErrorCode    string          `json:"errorCode"`
	ErrorMessage string          `json:"errorMessage"`
	Code         json.RawMessage `json:"code"`
	Message      string          `json:"message"`
}

func newStatusError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{
		Status:    status,
		Kind:      kindForStatus(status),
		RequestID: requestID,
	}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		apiErr.Code = eb.ErrorCode
		if apiErr.Code == "" && len(eb.Code) > 0 {
			apiErr.Code = strings.Trim(string(eb.Code), `"`)
		}
		apiErr.Message = eb.ErrorMessage
		if apiErr.Message == "" {
			apiErr.Message = eb.Message
		}
	}
	if apiErr.Message == "" && len(body) > 0 {
		apiErr.Message = strings.TrimSpace(truncate(string(body), maxMessageBytes))
	}
	return apiErr
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
