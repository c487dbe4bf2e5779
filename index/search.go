package index

import (
	"math"
	"sort"
	"sync"
)

// MaxResultDocumentCount is kMaxResultDocumentCount from the spec.
const MaxResultDocumentCount = 5

// RelevanceEpsilon is kRelevanceEpsilon from the spec.
const RelevanceEpsilon = 1e-6

// Hit is a single scored search result.
type Hit struct {
	ID        int
	Relevance float64
	Rating    int
}

// Predicate decides whether a document qualifies for inclusion in results,
// independent of term matching. Any function value of this shape works;
// there is no predicate class hierarchy.
type Predicate func(id int, status Status, rating int) bool

// statusPredicate is the "filter by status" convenience overload collapsed
// into a Predicate value.
func statusPredicate(status Status) Predicate {
	return func(_ int, s Status, _ int) bool { return s == status }
}

var defaultPredicate = statusPredicate(StatusActual)

// FindTopDocuments searches with the default predicate (status == Actual).
func (idx *Index) FindTopDocuments(query string) ([]Hit, error) {
	return idx.FindTopDocumentsBy(query, defaultPredicate)
}

// FindTopDocumentsByStatus searches, keeping only documents with the given
// status.
func (idx *Index) FindTopDocumentsByStatus(query string, status Status) ([]Hit, error) {
	return idx.FindTopDocumentsBy(query, statusPredicate(status))
}

// FindTopDocumentsBy searches with an arbitrary predicate. Results are
// ordered by relevance descending, rating descending on near-ties (within
// RelevanceEpsilon), truncated to MaxResultDocumentCount.
func (idx *Index) FindTopDocumentsBy(query string, pred Predicate) ([]Hit, error) {
	q, err := parseQuery(query, idx.stopWords)
	if err != nil {
		return nil, err
	}

	rel := idx.accumulateRelevance(q, pred)

	hits := make([]Hit, 0, len(rel))
	for id, r := range rel {
		hits = append(hits, Hit{ID: id, Relevance: r, Rating: idx.documents[id].rating})
	}

	sortHits(hits)
	return truncateHits(hits), nil
}

func (idx *Index) accumulateRelevance(q Query, pred Predicate) map[int]float64 {
	rel := make(map[int]float64)

	for w := range q.Plus {
		postings, ok := idx.postings[w]
		if !ok {
			continue
		}
		idf := idx.inverseDocumentFrequency(w)
		for id, tf := range postings {
			doc := idx.documents[id]
			if pred(id, doc.status, doc.rating) {
				rel[id] += tf * idf
			}
		}
	}

	for w := range q.Minus {
		postings, ok := idx.postings[w]
		if !ok {
			continue
		}
		for id := range postings {
			delete(rel, id)
		}
	}

	return rel
}

// inverseDocumentFrequency computes ln(N / df(w)) against the live
// corpus. Only ever called for words known to be in postings.
func (idx *Index) inverseDocumentFrequency(w string) float64 {
	return math.Log(float64(idx.DocumentCount()) / float64(len(idx.postings[w])))
}

// hitLess is the strict weak ordering used for top-k selection: near-ties
// in relevance (within RelevanceEpsilon) break on rating descending;
// otherwise relevance descending wins.
func hitLess(lhs, rhs Hit) bool {
	if math.Abs(lhs.Relevance-rhs.Relevance) < RelevanceEpsilon {
		return lhs.Rating > rhs.Rating
	}
	return lhs.Relevance > rhs.Relevance
}

func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool { return hitLess(hits[i], hits[j]) })
}

func truncateHits(hits []Hit) []Hit {
	if len(hits) > MaxResultDocumentCount {
		return hits[:MaxResultDocumentCount]
	}
	return hits
}

// FindTopDocumentsParallel is the parallel-accumulation counterpart of
// FindTopDocuments. Same semantics, bit-identical ids and order for the
// same inputs, modulo floating-point addition reordering within a single
// relevance cell (each cell is summed under one bucket lock in sequence;
// parallelism is between buckets, not within a cell).
func (idx *Index) FindTopDocumentsParallel(query string) ([]Hit, error) {
	return idx.FindTopDocumentsByParallel(query, defaultPredicate)
}

func (idx *Index) FindTopDocumentsByStatusParallel(query string, status Status) ([]Hit, error) {
	return idx.FindTopDocumentsByParallel(query, statusPredicate(status))
}

func (idx *Index) FindTopDocumentsByParallel(query string, pred Predicate) ([]Hit, error) {
	q, err := parseQuery(query, idx.stopWords)
	if err != nil {
		return nil, err
	}

	cm := newConcurrentMap(defaultBucketCount)

	var wg sync.WaitGroup
	for w := range q.Plus {
		postings, ok := idx.postings[w]
		if !ok {
			continue
		}
		idf := idx.inverseDocumentFrequency(w)
		wg.Add(1)
		go func(postings map[int]float64, idf float64) {
			defer wg.Done()
			for id, tf := range postings {
				doc := idx.documents[id]
				if pred(id, doc.status, doc.rating) {
					cm.add(id, tf*idf)
				}
			}
		}(postings, idf)
	}
	wg.Wait()

	for w := range q.Minus {
		postings, ok := idx.postings[w]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(postings map[int]float64) {
			defer wg.Done()
			for id := range postings {
				cm.erase(id)
			}
		}(postings)
	}
	wg.Wait()

	rel := cm.buildOrdinaryMap()
	ids := make([]int, 0, len(rel))
	for id := range rel {
		ids = append(ids, id)
	}

	hits := parallelMaterializeHits(ids, rel, func(id int) int { return idx.documents[id].rating })

	sortHits(hits)
	return truncateHits(hits), nil
}

// parallelMaterializeHits transforms ids into Hits using a fixed worker
// pool over contiguous chunks, the same chunking shape as the bulk loader
// uses for documents.
func parallelMaterializeHits(ids []int, rel map[int]float64, ratingOf func(id int) int) []Hit {
	hits := make([]Hit, len(ids))
	if len(ids) == 0 {
		return hits
	}

	numWorkers := workerCountFor(len(ids))
	chunkSize := len(ids) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == numWorkers-1 {
			end = len(ids)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				id := ids[j]
				hits[j] = Hit{ID: id, Relevance: rel[id], Rating: ratingOf(id)}
			}
		}(start, end)
	}
	wg.Wait()

	return hits
}
