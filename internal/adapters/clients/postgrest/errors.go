// Package postgrest implements the project store against a PostgREST
// compatible query gateway such as Supabase's REST endpoint. Rows travel as
// raw JSON objects and are handed to the application layer unvalidated.
package postgrest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// Error is a non-2xx response from the gateway. Code, Message, Details and
// Hint mirror the gateway's JSON error body and are empty when the body
// could not be parsed.
type Error struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "postgrest: status %d", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&b, " code %s", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Details != "" {
		fmt.Fprintf(&b, " (%s)", e.Details)
	}
	return b.String()
}

// errorBody is the gateway's JSON error shape. Details and hint are null
// when absent.
type errorBody struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details"`
	Hint    *string `json:"hint"`
}

// translateError builds an *Error from a failed response. The body is read
// best-effort; a missing or malformed body falls back to the status text.
func translateError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode}

	if resp.Body != nil {
		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if err == nil {
			var body errorBody
			if json.Unmarshal(raw, &body) == nil {
				e.Code = body.Code
				e.Message = body.Message
				e.Details = deref(body.Details)
				e.Hint = deref(body.Hint)
			}
		}
	}

	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
