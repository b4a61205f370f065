package ingest

import (
	"unicode"
	"unicode/utf8"
)

// Tokenizer splits narrative text into word and punctuation tokens.
// Case is preserved; callers lowercase when comparing.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into an ordered token sequence. Whitespace separates
// tokens and is dropped. Every other non-word rune becomes a token of its own,
// except where it joins a word:
//   - '+' after a word stays attached ("K+", "Ca++")
//   - '-' ending a word stays attached ("Cl-"); between word runes it is a
//     token of its own ("sodium", "-", "potassium")
//   - '.' between digits stays attached ("7.35")
//   - '\'' followed by a letter stays attached ("patient's")
//
// The output is deterministic for a given input.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	start := -1 // byte offset of the word being built, -1 when none

	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, text[start:end])
			start = -1
		}
	}

	for i, r := range text {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case start >= 0 && r == '+':
		case start >= 0 && r == '-' && !nextIsWordRune(text, i+1):
		case start >= 0 && r == '.' && prevIsDigit(text, i) && nextIsDigit(text, i+1):
		case start >= 0 && r == '\'' && nextIsLetter(text, i+1):
		case unicode.IsSpace(r):
			flush(i)
		default:
			flush(i)
			tokens = append(tokens, string(r))
		}
	}
	flush(len(text))

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func prevIsDigit(s string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsDigit(r)
}

func nextIsDigit(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsDigit(r)
}

func nextIsWordRune(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func nextIsLetter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r)
}
