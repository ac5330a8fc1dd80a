package tokenizer

import "errors"

// ErrUnknownToken is returned when text or an ID falls outside the vocabulary.
var ErrUnknownToken = errors.New("unknown token")

// EndOfSequence is the reserved ID closing every sequence of a dense
// vocabulary.
const EndOfSequence int32 = 0

// Codec converts between text and token IDs.
type Codec interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)
}

// Tokenizer is a Codec with a known vocabulary.
type Tokenizer interface {
	Codec

	// VocabSize returns the total vocabulary size.
	VocabSize() int

	// EosToken returns the end-of-sequence token ID.
	// Returns -1 if not applicable.
	EosToken() int32
}
