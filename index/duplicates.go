package index

import (
	"sort"
	"strings"
)

// RemoveDuplicates scans ids in doc_order and removes every document
// whose term set (doc_terms keys, frequencies ignored) matches an earlier
// document's, keeping the first id of each equivalence class in doc_order
// (the lowest id only when ids were inserted in ascending order). report, if
// non-nil, is called once per removed id in doc_order.
//
// The signature is the sorted term list joined with a NUL separator rather
// than bare concatenation, so two documents with different term splits
// that happen to concatenate to the same string (e.g. {"ab","c"} vs
// {"a","bc"}) are never mistaken for duplicates.
func (idx *Index) RemoveDuplicates(report func(id int)) {
	seen := make(map[string]struct{})
	var toRemove []int

	for _, id := range idx.IterIDs() {
		terms := idx.docTerms[id]
		words := make([]string, 0, len(terms))
		for w := range terms {
			words = append(words, w)
		}
		sort.Strings(words)
		signature := strings.Join(words, "\x00")

		if _, dup := seen[signature]; dup {
			toRemove = append(toRemove, id)
		} else {
			seen[signature] = struct{}{}
		}
	}

	for _, id := range toRemove {
		idx.RemoveDocument(id)
		if report != nil {
			report(id)
		}
	}
}
