// Package envelope implements the {success, data, error} wrapper used by every dashboard API response.
//
// Servers write envelopes with [WriteSuccess] and [WriteError]. Clients decode them into a [Result], a tagged
// value that is either Ok(data) or Err(message).
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultMessage replaces a missing error message on a failed envelope.
const DefaultMessage = "Unknown error"

// Envelope is the wire form of an API response.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

// ErrorBody carries the message of a failed response.
type ErrorBody struct {
	Message string `json:"message"`
}

// Message returns the failure message, or [DefaultMessage] when the envelope has none.
func (e Envelope) Message() string {
	if e.Error == nil || e.Error.Message == "" {
		return DefaultMessage
	}
	return e.Error.Message
}

// WriteSuccess writes a 200 envelope with data. A nil data value is written as an empty object.
func WriteSuccess(w http.ResponseWriter, data any) error {
	if data == nil {
		data = struct{}{}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return WriteError(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}

	return write(w, http.StatusOK, Envelope{Success: true, Data: raw})
}

// WriteError writes a failed envelope with the given status code.
func WriteError(w http.ResponseWriter, message string, code int) error {
	if message == "" {
		message = DefaultMessage
	}
	return write(w, code, Envelope{Error: &ErrorBody{Message: message}})
}

func write(w http.ResponseWriter, code int, env Envelope) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(env)
}

// Decode reads an envelope from r and converts it into a [Result].
//
// Parse failures and success=false both produce Err. On success the data member is decoded into T; an absent
// data member leaves T at its zero value.
func Decode[T any](r io.Reader) Result[T] {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Err[T](fmt.Sprintf("invalid response: %v", err))
	}

	if !env.Success {
		return Err[T](env.Message())
	}

	var data T
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Err[T](fmt.Sprintf("invalid response data: %v", err))
		}
	}

	return Ok(data)
}
