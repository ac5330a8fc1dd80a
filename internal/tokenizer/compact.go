package tokenizer

import (
	"fmt"
	"slices"
)

// Dense is a Tokenizer whose IDs fill [0, VocabSize) with EndOfSequence at 0.
// It remaps the IDs an inner tokenizer produced for a corpus.
type Dense struct {
	inner   Codec
	outer   []int32 // outer[id-1] is the inner ID
	toDense map[int32]int32
}

// Compact encodes corpus with inner and keeps only the IDs it used, in
// ascending inner order.
func Compact(inner Codec, corpus ...string) (*Dense, error) {
	seen := make(map[int32]struct{})
	for i, text := range corpus {
		tokens, err := inner.Encode(text)
		if err != nil {
			return nil, fmt.Errorf("corpus entry %d: %w", i, err)
		}
		for _, tok := range tokens {
			seen[tok] = struct{}{}
		}
	}

	outer := make([]int32, 0, len(seen))
	for tok := range seen {
		outer = append(outer, tok)
	}
	slices.Sort(outer)

	toDense := make(map[int32]int32, len(outer))
	for i, tok := range outer {
		toDense[tok] = int32(i + 1) //nolint:gosec // G115: bounded by the inner vocabulary.
	}
	return &Dense{inner: inner, outer: outer, toDense: toDense}, nil
}

// Encode tokenizes with the inner tokenizer and remaps. Tokens the corpus
// never produced are rejected.
func (d *Dense) Encode(text string) ([]int32, error) {
	tokens, err := d.inner.Encode(text)
	if err != nil {
		return nil, err
	}
	for i, tok := range tokens {
		id, ok := d.toDense[tok]
		if !ok {
			return nil, fmt.Errorf("%w: inner id %d", ErrUnknownToken, tok)
		}
		tokens[i] = id
	}
	return tokens, nil
}

// Decode maps dense IDs back and decodes with the inner tokenizer.
// EndOfSequence decodes to nothing.
func (d *Dense) Decode(tokens []int32) (string, error) {
	inner := make([]int32, 0, len(tokens))
	for _, id := range tokens {
		if id == EndOfSequence {
			continue
		}
		if id < 0 || int(id) > len(d.outer) {
			return "", fmt.Errorf("%w: id %d", ErrUnknownToken, id)
		}
		inner = append(inner, d.outer[id-1])
	}
	return d.inner.Decode(inner)
}

// VocabSize counts the retained IDs plus EndOfSequence.
func (d *Dense) VocabSize() int {
	return len(d.outer) + 1
}

// EosToken returns EndOfSequence.
func (d *Dense) EosToken() int32 {
	return EndOfSequence
}
