// Package requestqueue wraps an index.Index with a rolling count of
// no-result queries, the collaborator spec.md calls the
// "no-result-requests-in-last-1440-queries counter widget" and keeps out
// of the core's specification.
package requestqueue

import (
	"container/ring"

	"github.com/devancy/search-index-engine/index"
)

// WindowSize is kMinutesPerDay from the spec: the exact sliding window
// width over which no-result requests are counted.
const WindowSize = 1440

// RequestQueue records, for each of the last WindowSize requests, whether
// it returned zero hits, and reports the count among the live window.
// Unlike the original this implements an exact sliding window (Open
// Question 4): the boundary is never off by one, because a request that
// falls out of the window always gets its contribution subtracted,
// regardless of whether the queue has reached WindowSize entries yet.
type RequestQueue struct {
	idx   *index.Index
	ring  *ring.Ring // each slot holds a bool: did that request have zero hits?
	count int        // number of requests recorded so far, capped at WindowSize
	noHit int        // no-result requests currently inside the window
}

// New builds a RequestQueue over idx.
func New(idx *index.Index) *RequestQueue {
	return &RequestQueue{
		idx:  idx,
		ring: ring.New(WindowSize),
	}
}

// AddFindRequest runs pred-filtered FindTopDocuments against the wrapped
// index, records whether it had zero hits, and returns the hits.
func (q *RequestQueue) AddFindRequest(rawQuery string, pred index.Predicate) ([]index.Hit, error) {
	hits, err := q.idx.FindTopDocumentsBy(rawQuery, pred)
	if err != nil {
		return nil, err
	}
	q.record(len(hits) == 0)
	return hits, nil
}

// AddFindRequestByStatus is the status-filtered convenience overload.
func (q *RequestQueue) AddFindRequestByStatus(rawQuery string, status index.Status) ([]index.Hit, error) {
	hits, err := q.idx.FindTopDocumentsByStatus(rawQuery, status)
	if err != nil {
		return nil, err
	}
	q.record(len(hits) == 0)
	return hits, nil
}

// AddFindRequestDefault defaults to status == Actual.
func (q *RequestQueue) AddFindRequestDefault(rawQuery string) ([]index.Hit, error) {
	hits, err := q.idx.FindTopDocuments(rawQuery)
	if err != nil {
		return nil, err
	}
	q.record(len(hits) == 0)
	return hits, nil
}

func (q *RequestQueue) record(noResult bool) {
	if q.count == WindowSize {
		if q.ring.Value.(bool) {
			q.noHit--
		}
	} else {
		q.count++
	}

	q.ring.Value = noResult
	if noResult {
		q.noHit++
	}
	q.ring = q.ring.Next()
}

// NoResultRequests returns the number of no-result requests among the
// last WindowSize requests (or fewer, if fewer have been made so far).
func (q *RequestQueue) NoResultRequests() int {
	return q.noHit
}
