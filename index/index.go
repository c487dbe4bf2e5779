package index

import "fmt"

// Index is an inverted full-text index: a dual word->doc and doc->word
// representation of term frequencies, plus document metadata and
// insertion order. The zero value is not usable; construct with New or
// NewFromText.
//
// The Index is not thread-safe across write and read operations. Multiple
// concurrent reads are safe iff no writer is active; callers own external
// read/write exclusion. The parallel read path (FindTopDocumentsParallel,
// MatchDocumentParallel) mutates only call-local state (for
// FindTopDocumentsParallel, a call-local concurrentMap) and is safe to run
// alongside other reads under that same discipline.
type Index struct {
	stopWords stopWordSet
	words     *wordStore

	postings  map[string]map[int]float64 // word -> docID -> tf
	docTerms  map[int]map[string]float64 // docID -> word -> tf
	documents map[int]document
	docOrder  []int
}

// New builds an Index with the given stop words. Fails with ErrInvalidInput
// if any stop word contains a control byte.
func New(stopWords []string) (*Index, error) {
	sw, err := newStopWordSet(stopWords)
	if err != nil {
		return nil, err
	}
	return &Index{
		stopWords: sw,
		words:     newWordStore(),
		postings:  make(map[string]map[int]float64),
		docTerms:  make(map[int]map[string]float64),
		documents: make(map[int]document),
	}, nil
}

// NewFromText is a convenience constructor that splits stopWordsText on
// spaces before delegating to New.
func NewFromText(stopWordsText string) (*Index, error) {
	return New(tokenize(stopWordsText))
}

// AddDocument indexes text under id with the given status and rating
// history. Fails with ErrInvalidInput if id is negative, id is already
// present, any document token contains a control byte, or the document has
// no indexable terms left after stop-word filtering (Open Question 1:
// all-stop-word documents are rejected rather than admitted with an empty
// term set — see DESIGN.md). On failure no index mutation is observable.
func (idx *Index) AddDocument(id int, text string, status Status, ratings []int) error {
	if id < 0 {
		return fmt.Errorf("%w: document id %d is negative", ErrInvalidInput, id)
	}
	if _, exists := idx.documents[id]; exists {
		return fmt.Errorf("%w: document id %d already present", ErrInvalidInput, id)
	}

	raw := tokenize(text)
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if !isValidToken(w) {
			return fmt.Errorf("%w: document %d contains control byte in token %q", ErrInvalidInput, id, w)
		}
		if idx.stopWords.contains(w) {
			continue
		}
		words = append(words, w)
	}

	n := len(words)
	if n == 0 {
		return fmt.Errorf("%w: document %d has no indexable terms after stop-word filtering", ErrInvalidInput, id)
	}

	counts := make(map[string]int, n)
	for _, w := range words {
		counts[w]++
	}

	terms := make(map[string]float64, len(counts))
	for w, c := range counts {
		terms[idx.words.intern(w)] = float64(c) / float64(n)
	}

	// Commit: every check that can fail ran before any shared state was
	// touched; only the interning just above (after the last check) wrote to
	// the word store, so a failure never leaves a partial mutation observable.
	for w, tf := range terms {
		bucket, ok := idx.postings[w]
		if !ok {
			bucket = make(map[int]float64)
			idx.postings[w] = bucket
		}
		bucket[id] = tf
	}
	idx.docTerms[id] = terms
	idx.documents[id] = document{status: status, rating: computeAverageRating(ratings)}
	idx.docOrder = append(idx.docOrder, id)

	return nil
}

// RemoveDocument removes id from the index. A no-op, not an error, if id
// is absent (matching the write-path contract of a read-mostly model).
func (idx *Index) RemoveDocument(id int) {
	terms, ok := idx.docTerms[id]
	if !ok {
		return
	}

	for w := range terms {
		bucket := idx.postings[w]
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(idx.postings, w)
			idx.words.release(w)
		}
	}

	delete(idx.docTerms, id)
	delete(idx.documents, id)

	for i, docID := range idx.docOrder {
		if docID == id {
			idx.docOrder = append(idx.docOrder[:i], idx.docOrder[i+1:]...)
			break
		}
	}
}

// GetWordFrequencies returns a copy of the per-word tf values for id.
// Fails with ErrUnknownDocument if id is absent.
func (idx *Index) GetWordFrequencies(id int) (map[string]float64, error) {
	terms, ok := idx.docTerms[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %d", ErrUnknownDocument, id)
	}
	out := make(map[string]float64, len(terms))
	for w, tf := range terms {
		out[w] = tf
	}
	return out, nil
}

// DocumentCount returns the number of live documents.
func (idx *Index) DocumentCount() int {
	return len(idx.documents)
}

// IterIDs returns the live document ids in insertion order minus removals.
func (idx *Index) IterIDs() []int {
	out := make([]int, len(idx.docOrder))
	copy(out, idx.docOrder)
	return out
}
