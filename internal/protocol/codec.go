package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errEmptyMessage = errors.New("empty message")

// DecodeError reports bytes that could not be parsed as JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode message: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Request is a decoded inbound message that has not been validated yet.
type Request struct {
	raw   []byte
	value any
}

// Decode parses one inbound message. Any JSON value decodes successfully;
// whether it is a guess is decided by validation. An empty payload is a
// decode error: disconnects are signalled by the transport, not here.
func Decode(b []byte) (*Request, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, &DecodeError{Err: errEmptyMessage}
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &Request{raw: append([]byte(nil), b...), value: v}, nil
}

// Value is the generic JSON value of the message.
func (r *Request) Value() any { return r.value }

// Raw is the message as received.
func (r *Request) Raw() []byte { return r.raw }

// Guess converts the request into a GuessMessage. It must only be trusted
// after schema validation.
func (r *Request) Guess() (GuessMessage, error) {
	var g GuessMessage
	err := json.Unmarshal(r.raw, &g)
	return g, err
}

// Encode serializes an outbound message.
func Encode(msg any) ([]byte, error) {
	return json.Marshal(msg)
}
