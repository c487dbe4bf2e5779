package index

import "fmt"

// stopWordSet is the set of words dropped before indexing and before query
// evaluation. Immutable after construction.
type stopWordSet map[string]struct{}

// newStopWordSet validates and builds a stop word set from a raw word
// list. Empty entries are ignored; any word containing a control byte
// fails construction with ErrInvalidInput.
func newStopWordSet(words []string) (stopWordSet, error) {
	s := make(stopWordSet, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if !isValidToken(w) {
			return nil, fmt.Errorf("%w: stop word %q contains a control byte", ErrInvalidInput, w)
		}
		s[w] = struct{}{}
	}
	return s, nil
}

func (s stopWordSet) contains(w string) bool {
	_, ok := s[w]
	return ok
}
