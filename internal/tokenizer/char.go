package tokenizer

import (
	"fmt"
	"slices"
	"strings"
)

// Char maps every distinct rune of a corpus to its own ID. IDs start at 1 in
// rune order; 0 is EndOfSequence.
type Char struct {
	runes []rune // runes[id-1]
	ids   map[rune]int32
}

// NewChar builds a character vocabulary from the given texts.
func NewChar(corpus ...string) *Char {
	seen := make(map[rune]struct{})
	for _, text := range corpus {
		for _, r := range text {
			seen[r] = struct{}{}
		}
	}

	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	slices.Sort(runes)

	ids := make(map[rune]int32, len(runes))
	for i, r := range runes {
		ids[r] = int32(i + 1) //nolint:gosec // G115: vocabulary is bounded by distinct runes.
	}
	return &Char{runes: runes, ids: ids}
}

// Encode returns one ID per rune. Runes absent from the corpus are rejected.
func (c *Char) Encode(text string) ([]int32, error) {
	tokens := make([]int32, 0, len(text))
	for _, r := range text {
		id, ok := c.ids[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownToken, r)
		}
		tokens = append(tokens, id)
	}
	return tokens, nil
}

// Decode concatenates the runes of tokens. EndOfSequence decodes to nothing.
func (c *Char) Decode(tokens []int32) (string, error) {
	var sb strings.Builder
	for _, id := range tokens {
		if id == EndOfSequence {
			continue
		}
		if id < 0 || int(id) > len(c.runes) {
			return "", fmt.Errorf("%w: id %d", ErrUnknownToken, id)
		}
		sb.WriteRune(c.runes[id-1])
	}
	return sb.String(), nil
}

// VocabSize counts the distinct runes plus EndOfSequence.
func (c *Char) VocabSize() int {
	return len(c.runes) + 1
}

// EosToken returns EndOfSequence.
func (c *Char) EosToken() int32 {
	return EndOfSequence
}

// Runes returns the vocabulary in ID order, starting at ID 1.
func (c *Char) Runes() []rune {
	return slices.Clone(c.runes)
}
