package index

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// workerCountFor bounds a worker pool to at most NumCPU and never more
// than the number of items, matching the chunk-splitting shape used
// throughout the parallel read path.
func workerCountFor(n int) int {
	w := runtime.NumCPU()
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// MatchDocument parses query and reports which of its plus-words occur in
// id's term set, sorted and unique, alongside id's status. If any minus
// word occurs in the document, the word list is empty (the status is
// still returned). Fails with ErrUnknownDocument if id is absent.
func (idx *Index) MatchDocument(query string, id int) ([]string, Status, error) {
	doc, ok := idx.documents[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: document %d", ErrUnknownDocument, id)
	}
	q, err := parseQuery(query, idx.stopWords)
	if err != nil {
		return nil, 0, err
	}

	terms := idx.docTerms[id]

	for w := range q.Minus {
		if _, ok := terms[w]; ok {
			return []string{}, doc.status, nil
		}
	}

	matched := make([]string, 0, len(q.Plus))
	for w := range q.Plus {
		if _, ok := terms[w]; ok {
			matched = append(matched, w)
		}
	}
	sort.Strings(matched)

	return matched, doc.status, nil
}

// MatchDocumentParallel is the parallel counterpart of MatchDocument: the
// minus-word check runs as a fan-out "any match cancels the rest", and
// the plus-word filter runs as a fan-out "keep predicate" over chunks.
// Result is identical up to the ordering fixed by the final sort.
func (idx *Index) MatchDocumentParallel(query string, id int) ([]string, Status, error) {
	doc, ok := idx.documents[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: document %d", ErrUnknownDocument, id)
	}
	q, err := parseQuery(query, idx.stopWords)
	if err != nil {
		return nil, 0, err
	}

	terms := idx.docTerms[id]

	minusWords := make([]string, 0, len(q.Minus))
	for w := range q.Minus {
		minusWords = append(minusWords, w)
	}
	if parallelAnyInTerms(minusWords, terms) {
		return []string{}, doc.status, nil
	}

	plusWords := make([]string, 0, len(q.Plus))
	for w := range q.Plus {
		plusWords = append(plusWords, w)
	}
	matched := parallelFilterInTerms(plusWords, terms)
	sort.Strings(matched)

	return matched, doc.status, nil
}

// parallelAnyInTerms reports whether any word in words is a key of terms,
// checking chunks concurrently and short-circuiting as soon as one worker
// reports a match.
func parallelAnyInTerms(words []string, terms map[string]float64) bool {
	if len(words) == 0 {
		return false
	}
	numWorkers := workerCountFor(len(words))
	chunkSize := len(words) / numWorkers

	found := make(chan bool, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(words)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				if _, ok := terms[words[j]]; ok {
					found <- true
					return
				}
			}
		}(start, end)
	}
	go func() {
		wg.Wait()
		close(found)
	}()

	for v := range found {
		if v {
			return true
		}
	}
	return false
}

// parallelFilterInTerms keeps every word that is a key of terms, chunking
// the scan across a worker pool and concatenating each chunk's survivors
// in chunk order.
func parallelFilterInTerms(words []string, terms map[string]float64) []string {
	if len(words) == 0 {
		return []string{}
	}
	numWorkers := workerCountFor(len(words))
	chunkSize := len(words) / numWorkers

	kept := make([][]string, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(words)
		}
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			local := make([]string, 0, end-start)
			for j := start; j < end; j++ {
				if _, ok := terms[words[j]]; ok {
					local = append(local, words[j])
				}
			}
			kept[i] = local
		}(i, start, end)
	}
	wg.Wait()

	out := make([]string, 0, len(words))
	for _, l := range kept {
		out = append(out, l...)
	}
	return out
}
