package index

import "strings"

// tokenize splits text on runs of ASCII space (0x20), discarding leading,
// trailing and consecutive separators. It never splits on other whitespace
// bytes (tab, newline), matching the single-character split the source
// performs rather than a locale-aware word split.
func tokenize(text string) []string {
	raw := strings.Split(text, " ")
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// isValidToken reports whether a token contains no byte below 0x20. Callers
// (AddDocument, parseQuery) are responsible for failing on invalid tokens;
// the tokenizer itself never rejects input.
func isValidToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 {
			return false
		}
	}
	return true
}
