package index

import "sync"

// defaultBucketCount is kDefaultBucketCount from the spec.
const defaultBucketCount = 10

// concurrentMap is a sharded map[int]float64 used only by the parallel
// read path to accumulate relevance without a single global lock. A key k
// routes to bucket uint64(k) % len(buckets); distinct buckets proceed
// independently, each guarded by its own mutex.
type concurrentMap struct {
	buckets []*cmBucket
}

type cmBucket struct {
	mu sync.Mutex
	m  map[int]float64
}

func newConcurrentMap(bucketCount int) *concurrentMap {
	if bucketCount <= 0 {
		bucketCount = defaultBucketCount
	}
	cm := &concurrentMap{buckets: make([]*cmBucket, bucketCount)}
	for i := range cm.buckets {
		cm.buckets[i] = &cmBucket{m: make(map[int]float64)}
	}
	return cm
}

func (cm *concurrentMap) bucketFor(key int) *cmBucket {
	idx := uint64(key) % uint64(len(cm.buckets))
	return cm.buckets[idx]
}

// add adds delta to the value at key, creating a zero-initialized slot on
// first touch. Locks and releases the owning bucket's mutex; never blocks
// on any other bucket.
func (cm *concurrentMap) add(key int, delta float64) {
	b := cm.bucketFor(key)
	b.mu.Lock()
	b.m[key] += delta
	b.mu.Unlock()
}

func (cm *concurrentMap) erase(key int) {
	b := cm.bucketFor(key)
	b.mu.Lock()
	delete(b.m, key)
	b.mu.Unlock()
}

// buildOrdinaryMap locks each bucket in turn and returns a merged map. Must
// not be called concurrently with add or erase.
func (cm *concurrentMap) buildOrdinaryMap() map[int]float64 {
	out := make(map[int]float64)
	for _, b := range cm.buckets {
		b.mu.Lock()
		for k, v := range b.m {
			out[k] = v
		}
		b.mu.Unlock()
	}
	return out
}
