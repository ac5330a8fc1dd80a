package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// rawBPE exposes the full ID range of a tiktoken encoding. Special-token
// text such as <|endoftext|> is split like any other text.
type rawBPE struct {
	enc *tiktoken.Tiktoken
}

func (b rawBPE) Encode(text string) ([]int32, error) {
	ranks := b.enc.EncodeOrdinary(text)
	ids := make([]int32, len(ranks))
	for i, r := range ranks {
		ids[i] = int32(r) //nolint:gosec // G115: BPE ranks stay below 2^31.
	}
	return ids, nil
}

func (b rawBPE) Decode(ids []int32) (string, error) {
	ranks := make([]int, len(ids))
	for i, id := range ids {
		ranks[i] = int(id)
	}
	return b.enc.Decode(ranks), nil
}

// NewTikToken loads the named tiktoken encoding (cl100k_base, p50k_base,
// r50k_base, ...) and keeps only the BPE tokens corpus uses, numbered from 1.
// The ranks are downloaded on first use unless TIKTOKEN_CACHE_DIR holds them.
func NewTikToken(encoding string, corpus ...string) (*Dense, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}
	return Compact(rawBPE{enc: enc}, corpus...)
}

// NewTikTokenForModel is NewTikToken with the encoding an OpenAI model
// name such as "gpt-4" maps to.
func NewTikTokenForModel(model string, corpus ...string) (*Dense, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding for %q: %w", model, err)
	}
	return Compact(rawBPE{enc: enc}, corpus...)
}
