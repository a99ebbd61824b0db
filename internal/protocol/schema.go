package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// schemaJSON is the guess message schema. It is sent verbatim to clients
// that send malformed or mismatching messages.
var schemaJSON = []byte(`{"type":"object","properties":{"guess":{"type":"string"},"hard":{"type":"boolean"}},"required":["guess","hard"]}`)

var guessSchema = mustCompile(schemaJSON)

func mustCompile(raw []byte) *openapi3.Schema {
	s := openapi3.NewSchema()
	if err := json.Unmarshal(raw, s); err != nil {
		panic(fmt.Sprintf("protocol: bad guess schema: %v", err))
	}
	return s
}

// Schema returns a copy of the guess message schema.
func Schema() json.RawMessage {
	return append(json.RawMessage(nil), schemaJSON...)
}

// GuessSchema returns the compiled guess message schema.
func GuessSchema() *openapi3.Schema { return guessSchema }
