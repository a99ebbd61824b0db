// internal/protocol/messages.go
//
// Wire messages exchanged between client and server. Every message is a
// single JSON object; on the default transport one read is one message.
//
//   Client → Server  GuessMessage     {"guess": "crane", "hard": true}
//   Server → Client  FeedbackMessage  {"hint": "02212", "guess_count": 1, "word": "crane"}
//   Server → Client  ErrorMessage     {"error": "...", "schema": {...}}

package protocol

import "encoding/json"

// MaxMessageSize bounds a single message on the read-framed transport.
const MaxMessageSize = 256

// Error categories sent to clients.
const (
	ErrTextMalformed  = "Improperly formatted JSON"
	ErrTextSchema     = "Given JSON does not match schema"
	ErrTextDictionary = "Guess must be 5 letters long and in wordlist"
)

// GuessMessage is the client request. Hard is advisory and unused by scoring.
type GuessMessage struct {
	Guess string `json:"guess"`
	Hard  bool   `json:"hard"`
}

// FeedbackMessage answers an accepted guess.
type FeedbackMessage struct {
	Hint       string `json:"hint"`        // one digit per letter: 0 absent, 1 present, 2 correct
	GuessCount int    `json:"guess_count"` // 1-based, within the current round
	Word       string `json:"word"`        // the round's secret word
}

// ErrorMessage answers a rejected message.
type ErrorMessage struct {
	Error  string          `json:"error"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

// Response is the union of everything the server may send, as seen by a client.
type Response struct {
	Hint       string          `json:"hint,omitempty"`
	GuessCount int             `json:"guess_count,omitempty"`
	Word       string          `json:"word,omitempty"`
	Error      string          `json:"error,omitempty"`
	Schema     json.RawMessage `json:"schema,omitempty"`
}

// IsError reports whether the response is an ErrorMessage.
func (r *Response) IsError() bool { return r.Error != "" }

// NewDecodeFailure is the reply to bytes that are not JSON.
func NewDecodeFailure() ErrorMessage {
	return ErrorMessage{Error: ErrTextMalformed, Schema: Schema()}
}

// NewSchemaFailure is the reply to JSON that does not match the guess schema.
func NewSchemaFailure() ErrorMessage {
	return ErrorMessage{Error: ErrTextSchema, Schema: Schema()}
}

// NewDictionaryFailure is the reply to a well-formed guess that is not a
// playable word.
func NewDictionaryFailure() ErrorMessage {
	return ErrorMessage{Error: ErrTextDictionary}
}
