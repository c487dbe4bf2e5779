package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRejectsInvalidStopWord(t *testing.T) {
	_, err := New([]string{"and", "bad\x01word"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewFromText(t *testing.T) {
	idx, err := NewFromText("and in at")
	assert.NoError(t, err)
	assert.NoError(t, idx.AddDocument(0, "cat in the city", StatusActual, []int{1, 2, 3}))

	freqs, err := idx.GetWordFrequencies(0)
	assert.NoError(t, err)
	assert.NotContains(t, freqs, "in")
}

func TestAddDocumentRejectsNegativeID(t *testing.T) {
	idx, _ := New(nil)
	err := idx.AddDocument(-1, "cat", StatusActual, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddDocumentRejectsDuplicateID(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "cat", StatusActual, nil))
	err := idx.AddDocument(1, "dog", StatusActual, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddDocumentRejectsControlByteToken(t *testing.T) {
	idx, _ := New(nil)
	err := idx.AddDocument(1, "cat dog\tcollar", StatusActual, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, idx.DocumentCount(), "a failed AddDocument must leave no observable mutation")
}

func TestAddDocumentRejectsAllStopWords(t *testing.T) {
	idx, _ := New([]string{"and", "in", "at"})
	err := idx.AddDocument(1, "and in at", StatusActual, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, idx.DocumentCount())
}

func TestComputeAverageRating(t *testing.T) {
	assert.Equal(t, 0, computeAverageRating(nil))
	assert.Equal(t, 0, computeAverageRating([]int{}))
	assert.Equal(t, 5, computeAverageRating([]int{7, 2, 7}))
	assert.Equal(t, 2, computeAverageRating([]int{1, 2, 3}))
	assert.Equal(t, -1, computeAverageRating([]int{-1, -1, -1}))
}

func TestGetWordFrequenciesUnknownDocument(t *testing.T) {
	idx, _ := New(nil)
	_, err := idx.GetWordFrequencies(42)
	assert.ErrorIs(t, err, ErrUnknownDocument)
}

func TestTfSumsToOne(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "curly cat curly tail", StatusActual, nil))

	freqs, err := idx.GetWordFrequencies(1)
	assert.NoError(t, err)

	sum := 0.0
	for _, tf := range freqs {
		sum += tf
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

// TestRemoveDocumentRestoresState is law L1: AddDocument then
// RemoveDocument with the same id restores document_count, iter_ids and
// postings to their pre-add values.
func TestRemoveDocumentRestoresState(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "cat dog", StatusActual, nil))

	before := idx.DocumentCount()
	beforeIDs := idx.IterIDs()

	assert.NoError(t, idx.AddDocument(2, "cat dog sparrow", StatusActual, nil))
	idx.RemoveDocument(2)

	assert.Equal(t, before, idx.DocumentCount())
	assert.Equal(t, beforeIDs, idx.IterIDs())
	assert.NotContains(t, idx.postings, "sparrow")
}

func TestRemoveDocumentNoop(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "cat", StatusActual, nil))
	idx.RemoveDocument(999) // absent id: no-op, not an error
	assert.Equal(t, 1, idx.DocumentCount())
}

// Scenario F — remove restores.
func TestScenarioF_RemoveRestores(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "cat", StatusActual, nil))
	assert.NoError(t, idx.AddDocument(2, "dog", StatusActual, nil))
	assert.NoError(t, idx.AddDocument(3, "sparrow", StatusActual, nil))

	idx.RemoveDocument(2)
	assert.Equal(t, 2, idx.DocumentCount())
	assert.Equal(t, []int{1, 3}, idx.IterIDs())

	assert.NoError(t, idx.AddDocument(2, "dog again", StatusActual, nil))
	assert.Equal(t, 3, idx.DocumentCount())
}

// TestInvariantDuality is property P1: postings[w][d] exists iff
// doc_terms[d][w] exists with equal tf.
func TestInvariantDuality(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "curly cat curly tail", StatusActual, nil))
	assert.NoError(t, idx.AddDocument(2, "curly dog fancy collar", StatusActual, nil))

	for w, docs := range idx.postings {
		for d, tf := range docs {
			terms := idx.docTerms[d]
			got, ok := terms[w]
			assert.True(t, ok)
			assert.Equal(t, tf, got)
		}
	}
	for d, terms := range idx.docTerms {
		for w, tf := range terms {
			got, ok := idx.postings[w][d]
			assert.True(t, ok)
			assert.Equal(t, tf, got)
		}
	}
}

// TestInvariantNoEmptyPostingList is property P2.
func TestInvariantNoEmptyPostingList(t *testing.T) {
	idx, _ := New(nil)
	assert.NoError(t, idx.AddDocument(1, "cat dog", StatusActual, nil))
	assert.NoError(t, idx.AddDocument(2, "cat", StatusActual, nil))

	idx.RemoveDocument(2)
	idx.RemoveDocument(1)

	for w, docs := range idx.postings {
		assert.NotEmpty(t, docs, "word %q left with empty posting list", w)
	}
	assert.Empty(t, idx.postings)
}

// TestInvariantStopExclusion is property P5.
func TestInvariantStopExclusion(t *testing.T) {
	idx, _ := New([]string{"and", "in", "at"})
	assert.NoError(t, idx.AddDocument(1, "cat in the city and at night", StatusActual, nil))

	assert.NotContains(t, idx.postings, "and")
	assert.NotContains(t, idx.postings, "in")
	assert.NotContains(t, idx.postings, "at")
}
