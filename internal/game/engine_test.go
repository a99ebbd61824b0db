package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylozac/wordle-5757/internal/protocol"
	"github.com/taylozac/wordle-5757/internal/words"
)

func testList(t *testing.T) *words.List {
	t.Helper()
	l, err := words.New([]string{"crane", "trace", "leant", "apple", "spoon", "moldy"})
	require.NoError(t, err)
	return l
}

func decode(t *testing.T, s string) *protocol.Request {
	t.Helper()
	req, err := protocol.Decode([]byte(s))
	require.NoError(t, err)
	return req
}

// TestComputeHint checks the simplified scoring rule.
func TestComputeHint(t *testing.T) {
	tests := []struct {
		guess, secret, want string
		comment             string
	}{
		{"crane", "crane", "22222", "All correct."},
		{"trace", "crane", "02212", "Mix of correct, present, absent."},
		{"leant", "crane", "01220", "Mix of correct, present, absent."},
		{"spoon", "moldy", "00110", "Both o are present, neither in place."},
		{"moldy", "spoon", "01000", "Only o occurs in the secret."},
		{"apple", "leant", "10011", "a, l and e occur elsewhere."},
		{"spoon", "crane", "00001", "n occurs but not at index 4."},
		{"ppppp", "apple", "12211", "Every p is marked, none consumed."},
		{"moldy", "crane", "00000", "All absent."},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.secret, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeHint(tt.guess, tt.secret).String(), tt.comment)
		})
	}
}

func TestComputeHintSelfIsSolved(t *testing.T) {
	l, err := words.Default()
	require.NoError(t, err)
	for _, w := range l.Words() {
		h := ComputeHint(w, w)
		assert.True(t, h.Solved(), w)
	}
}

func TestComputeHintDisjointIsAbsent(t *testing.T) {
	h := ComputeHint("moldy", "crane")
	assert.Equal(t, Hint{}, h)
	assert.False(t, h.Solved())
}

func TestHintCodeString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "present", Present.String())
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "unknown", HintCode(7).String())
}

func TestValidate(t *testing.T) {
	l := testList(t)
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr any
	}{
		{"valid", `{"guess":"crane","hard":true}`, "crane", nil},
		{"uppercase", `{"guess":"TRACE","hard":false}`, "trace", nil},
		{"extra field", `{"guess":"leant","hard":true,"x":1}`, "leant", nil},
		{"too short", `{"guess":"ab","hard":true}`, "", &DictionaryError{}},
		{"too long", `{"guess":"cranes","hard":true}`, "", &DictionaryError{}},
		{"not in list", `{"guess":"zzzzz","hard":true}`, "", &DictionaryError{}},
		{"missing hard", `{"guess":"crane"}`, "", &SchemaError{}},
		{"missing guess", `{"hard":true}`, "", &SchemaError{}},
		{"guess not string", `{"guess":12345,"hard":true}`, "", &SchemaError{}},
		{"hard not bool", `{"guess":"crane","hard":"yes"}`, "", &SchemaError{}},
		{"not an object", `["crane"]`, "", &SchemaError{}},
		{"null", `null`, "", &SchemaError{}},
		{"schema before length", `{"guess":"ab"}`, "", &SchemaError{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(decode(t, tt.in), l)
			switch tt.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			case *SchemaError:
				var se *SchemaError
				assert.True(t, errors.As(err, &se), "want SchemaError, got %v", err)
			case *DictionaryError:
				var de *DictionaryError
				assert.True(t, errors.As(err, &de), "want DictionaryError, got %v", err)
			}
		})
	}
}

func TestValidateRejectsWrongLengthEvenIfListed(t *testing.T) {
	dict := containsAll{}
	for _, g := range []string{"", "a", "abcd", "abcdef"} {
		_, err := Validate(decode(t, `{"guess":"`+g+`","hard":true}`), dict)
		var de *DictionaryError
		assert.True(t, errors.As(err, &de), g)
	}
}

func TestValidateFoldsDottedCapitalI(t *testing.T) {
	got, err := Validate(decode(t, `{"guess":"İRATE","hard":true}`), containsAll{})
	require.NoError(t, err)
	assert.Equal(t, "irate", got)
}

type containsAll struct{}

func (containsAll) Contains(string) bool { return true }

func TestRoundLifecycle(t *testing.T) {
	r := NewRound(1, "CRANE")
	assert.Equal(t, "crane", r.Secret)
	for i := 1; i <= MaxGuesses; i++ {
		require.False(t, r.Finished())
		h, err := r.Apply("trace")
		require.NoError(t, err)
		fb := r.Feedback(h)
		assert.Equal(t, protocol.FeedbackMessage{Hint: "02212", GuessCount: i, Word: "crane"}, fb)
	}
	assert.True(t, r.Finished())
	_, err := r.Apply("crane")
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.Equal(t, MaxGuesses, r.Count())
}

func TestRoundContinuesAfterSolve(t *testing.T) {
	r := NewRound(1, "crane")
	h, err := r.Apply("crane")
	require.NoError(t, err)
	assert.True(t, h.Solved())
	assert.False(t, r.Finished())
}
