package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words splits on single spaces; IDs are word lengths times 1000 plus the
// first byte, which is enough to exercise Compact without a BPE download.
type words struct{}

func (words) Encode(text string) ([]int32, error) {
	if text == "" {
		return nil, nil
	}
	var out []int32
	for _, w := range strings.Split(text, " ") {
		if w == "" {
			return nil, ErrUnknownToken
		}
		out = append(out, int32(len(w)*1000+int(w[0])))
	}
	return out, nil
}

func (words) Decode(tokens []int32) (string, error) {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		n, b := int(tok)/1000, byte(tok%1000)
		parts[i] = string(b) + strings.Repeat("_", n-1)
	}
	return strings.Join(parts, " "), nil
}

func (words) VocabSize() int  { return 1 << 20 }
func (words) EosToken() int32 { return -1 }

func TestChar_Vocabulary(t *testing.T) {
	tok := NewChar("hello", "world")

	assert.Equal(t, []rune("dehlorw"), tok.Runes())
	assert.Equal(t, 8, tok.VocabSize())
	assert.Equal(t, EndOfSequence, tok.EosToken())
}

func TestChar_EncodeDecode(t *testing.T) {
	tok := NewChar("abc ", "ünï")

	ids, err := tok.Encode("cab ün")
	require.NoError(t, err)
	require.Len(t, ids, 6)
	for _, id := range ids {
		assert.Positive(t, id)
	}

	text, err := tok.Decode(append(ids, EndOfSequence))
	require.NoError(t, err)
	assert.Equal(t, "cab ün", text)
}

func TestChar_Unknown(t *testing.T) {
	tok := NewChar("abc")

	_, err := tok.Encode("abz")
	require.ErrorIs(t, err, ErrUnknownToken)

	_, err = tok.Decode([]int32{1, 4})
	require.ErrorIs(t, err, ErrUnknownToken)

	_, err = tok.Decode([]int32{-2})
	require.ErrorIs(t, err, ErrUnknownToken)
}

func TestCompact(t *testing.T) {
	dense, err := Compact(words{}, "a bb a", "ccc a")
	require.NoError(t, err)

	// a, bb and ccc plus end-of-sequence.
	assert.Equal(t, 4, dense.VocabSize())
	assert.Equal(t, EndOfSequence, dense.EosToken())

	ids, err := dense.Encode("ccc bb a")
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 2, 1}, ids)

	text, err := dense.Decode([]int32{1, 3, EndOfSequence})
	require.NoError(t, err)
	assert.Equal(t, "a c__", text)
}

func TestCompact_Errors(t *testing.T) {
	_, err := Compact(words{}, "ok", "double  space")
	require.ErrorIs(t, err, ErrUnknownToken)

	dense, err := Compact(words{}, "a")
	require.NoError(t, err)

	_, err = dense.Encode("dddd")
	require.ErrorIs(t, err, ErrUnknownToken)

	_, err = dense.Decode([]int32{5})
	require.ErrorIs(t, err, ErrUnknownToken)
}
