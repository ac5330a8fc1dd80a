// Package tokenizer turns text into the dense token IDs consumed by the
// sequence model in textgen.
//
// Two strategies are provided:
//   - Char: one token per distinct rune of a training corpus
//   - TikToken: OpenAI BPE encodings through pkoukk/tiktoken-go
//
// BPE vocabularies are far larger than a small recurrent model can learn, so
// NewTikToken keeps only the BPE tokens a corpus uses and Compact renumbers
// them onto [1, n]. ID 0 is always the end-of-sequence token.
//
// Example usage:
//
//	tok, err := tokenizer.NewTikToken("cl100k_base", corpus...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := tok.Encode("hello world")
package tokenizer
