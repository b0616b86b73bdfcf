package patronus

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind discriminates API failures.
type ErrorKind string

const (
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindRateLimit      ErrorKind = "rate_limit"
	ErrorKindAPI            ErrorKind = "api"
)

// Error is a classified API failure. StatusCode and Body carry the original
// response so callers can implement their own retry policy; the client
// itself never retries.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       json.RawMessage
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return "patronus: " + e.Message
	}
	return fmt.Sprintf("patronus: %s (status %d)", e.Message, e.StatusCode)
}

// Is matches by kind so callers can use errors.Is with the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}

// Sentinels for errors.Is. Any *Error of the same kind matches regardless
// of message or status code.
var (
	ErrAuthentication = &Error{Kind: ErrorKindAuthentication, Message: "authentication failed"}
	ErrNotFound       = &Error{Kind: ErrorKindNotFound, Message: "not found"}
	ErrRateLimit      = &Error{Kind: ErrorKindRateLimit, Message: "rate limited"}
)

// classify maps a non-matching status code and response body to an *Error.
// The message comes from the body's "error" field when present; an
// undecodable or message-less body falls back to a fixed placeholder so
// classification itself can never fail.
func classify(status int, body []byte) *Error {
	msg := "Unknown error"
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	kind := ErrorKindAPI
	switch status {
	case http.StatusUnauthorized:
		kind = ErrorKindAuthentication
	case http.StatusNotFound:
		kind = ErrorKindNotFound
	case http.StatusTooManyRequests:
		kind = ErrorKindRateLimit
	}

	return &Error{
		Kind:       kind,
		Message:    msg,
		StatusCode: status,
		Body:       json.RawMessage(body),
	}
}
