// Package tokenizer provides text tokenization for the recur sequence models.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for tokenization tasks.
//
// Supported tokenizers:
//   - Char: one token per distinct rune of a corpus
//   - TikToken: OpenAI BPE tokenizers (GPT-3, GPT-4) limited to a corpus
//   - Compact: dense remapping of any codec onto the IDs a corpus uses
//
// Example usage:
//
//	import "github.com/recur-ml/recur/tokenizer"
//
//	tok, err := tokenizer.NewTikToken("cl100k_base", corpus...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens, err := tok.Encode("Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer

import (
	"github.com/recur-ml/recur/internal/tokenizer"
)

// Codec converts between text and token IDs.
type Codec = tokenizer.Codec

// Tokenizer is the core interface for text tokenization.
type Tokenizer = tokenizer.Tokenizer

// ErrUnknownToken is returned for text or IDs outside the vocabulary.
var ErrUnknownToken = tokenizer.ErrUnknownToken

// EndOfSequence is the reserved ID 0 of dense vocabularies.
const EndOfSequence = tokenizer.EndOfSequence

// NewChar builds a character vocabulary from corpus.
func NewChar(corpus ...string) Tokenizer {
	return tokenizer.NewChar(corpus...)
}

// NewTikToken loads a tiktoken encoding and keeps the BPE tokens corpus uses.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string, corpus ...string) (Tokenizer, error) {
	return tokenizer.NewTikToken(encodingName, corpus...)
}

// NewTikTokenForModel is NewTikToken for a model name.
//
// Example models: "gpt-4", "gpt-3.5-turbo".
func NewTikTokenForModel(modelName string, corpus ...string) (Tokenizer, error) {
	return tokenizer.NewTikTokenForModel(modelName, corpus...)
}

// Compact keeps only the IDs inner produces for corpus, renumbered densely
// from 1 with EndOfSequence at 0.
func Compact(inner Codec, corpus ...string) (Tokenizer, error) {
	return tokenizer.Compact(inner, corpus...)
}
