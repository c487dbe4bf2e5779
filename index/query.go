package index

import (
	"fmt"
	"strings"
)

// Query is the result of parsing a raw query string: two sets of terms,
// already stop-word filtered and deduplicated. A word given both with and
// without a leading '-' is present in both sets.
type Query struct {
	Plus  map[string]struct{}
	Minus map[string]struct{}
}

// parseQuery tokenizes raw, splits each token into a plus or minus term,
// drops stop words, and fails with ErrInvalidQuery before touching any
// index state if a token is empty, double-minus, or contains a control
// byte after the leading '-' is stripped.
func parseQuery(raw string, stop stopWordSet) (Query, error) {
	q := Query{Plus: make(map[string]struct{}), Minus: make(map[string]struct{})}

	for _, tok := range tokenize(raw) {
		word := tok
		isMinus := false
		if strings.HasPrefix(word, "-") {
			isMinus = true
			word = word[1:]
		}
		if word == "" || strings.HasPrefix(word, "-") || !isValidToken(word) {
			return Query{}, fmt.Errorf("%w: query token %q", ErrInvalidQuery, tok)
		}
		if stop.contains(word) {
			continue
		}
		if isMinus {
			q.Minus[word] = struct{}{}
		} else {
			q.Plus[word] = struct{}{}
		}
	}

	return q, nil
}
