package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"guess", `{"guess": "crane", "hard": true}`, false},
		{"any json value", `"crane"`, false},
		{"null", `null`, false},
		{"not json", `crane`, true},
		{"truncated", `{"guess": "cra`, true},
		{"trailing data", `{}{}`, true},
		{"empty", ``, true},
		{"whitespace", " \n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Decode([]byte(tt.in))
			if tt.wantErr {
				var de *DecodeError
				require.True(t, errors.As(err, &de), "want DecodeError, got %v", err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte(tt.in), req.Raw())
		})
	}
}

func TestRequestGuess(t *testing.T) {
	req, err := Decode([]byte(`{"guess":"CRANE","hard":false,"extra":1}`))
	require.NoError(t, err)
	g, err := req.Guess()
	require.NoError(t, err)
	assert.Equal(t, GuessMessage{Guess: "CRANE", Hard: false}, g)

	m, ok := req.Value().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CRANE", m["guess"])
}

func TestEncodeFeedback(t *testing.T) {
	b, err := Encode(FeedbackMessage{Hint: "02212", GuessCount: 1, Word: "crane"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint":"02212","guess_count":1,"word":"crane"}`, string(b))
}

func TestErrorMessagesSchemaPayload(t *testing.T) {
	for _, msg := range []ErrorMessage{NewDecodeFailure(), NewSchemaFailure()} {
		b, err := Encode(msg)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, msg.Error, out["error"])
		schema, ok := out["schema"].(map[string]any)
		require.True(t, ok, "schema must be an object in %s", b)
		assert.Equal(t, "object", schema["type"])
		assert.ElementsMatch(t, []any{"guess", "hard"}, schema["required"])
	}

	b, err := Encode(NewDictionaryFailure())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Guess must be 5 letters long and in wordlist"}`, string(b))
}

func TestEncodedMessagesFitInOneRead(t *testing.T) {
	for _, msg := range []any{
		NewDecodeFailure(),
		NewSchemaFailure(),
		NewDictionaryFailure(),
		FeedbackMessage{Hint: "22222", GuessCount: 6, Word: "crane"},
	} {
		b, err := Encode(msg)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(b), MaxMessageSize)
	}
}

func TestResponseUnion(t *testing.T) {
	var r Response
	require.NoError(t, json.Unmarshal([]byte(`{"error":"Improperly formatted JSON","schema":{"type":"object"}}`), &r))
	assert.True(t, r.IsError())
	assert.NotEmpty(t, r.Schema)

	r = Response{}
	require.NoError(t, json.Unmarshal([]byte(`{"hint":"00000","guess_count":2,"word":"crane"}`), &r))
	assert.False(t, r.IsError())
	assert.Equal(t, 2, r.GuessCount)
}

func TestSchemaIsCopy(t *testing.T) {
	s := Schema()
	s[0] = 'x'
	assert.Equal(t, byte('{'), Schema()[0])
	assert.NotNil(t, GuessSchema())
}
