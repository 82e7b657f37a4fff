package seqalign

import (
	"sync"
)

// Pair is a first/second pair of records to align.
type Pair struct {
	First, Second *Record
}

// PairResult is the outcome of one pair of a batch. Err is set instead of
// Result when the pair could not be aligned.
type PairResult struct {
	Index  int
	Pair   Pair
	Result *Result
	Err    error
}

// PairRecords pairs records by position. Extra records of the longer list
// are ignored.
func PairRecords(first, second []*Record) []Pair {
	n := min(len(first), len(second))
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = Pair{First: first[i], Second: second[i]}
	}
	return pairs
}

// AlignPairs aligns pairs on up to threads goroutines. Results are returned
// in input order. done, if not nil, is called once per finished pair from
// the worker goroutine.
func (e *Engine) AlignPairs(pairs []Pair, threads int, done func()) []*PairResult {
	results := make([]*PairResult, len(pairs))
	parallel(len(pairs), threads, func(i int) {
		res, err := e.AlignRecords(pairs[i].First, pairs[i].Second)
		results[i] = &PairResult{Index: i, Pair: pairs[i], Result: res, Err: err}
	}, done)
	return results
}

// ReadResult is the outcome of aligning one read profile of a batch.
type ReadResult struct {
	Index  int
	Read   *Record
	Result *ProfileResult
	Err    error
}

// AlignProfiles aligns every read against reference on up to threads
// goroutines, in input order.
func (e *Engine) AlignProfiles(reads []*Record, reference *Record, threads int, done func()) []*ReadResult {
	results := make([]*ReadResult, len(reads))
	parallel(len(reads), threads, func(i int) {
		res, err := e.AlignProfile(reads[i], reference)
		results[i] = &ReadResult{Index: i, Read: reads[i], Result: res, Err: err}
	}, done)
	return results
}

// parallel runs f(0..n-1) with at most threads calls in flight.
func parallel(n, threads int, f func(i int), done func()) {
	if threads < 1 {
		threads = 1
	}
	var wg sync.WaitGroup
	tokens := make(chan int, threads)
	for i := 0; i < n; i++ {
		tokens <- 1
		wg.Add(1)
		go func(i int) {
			defer func() {
				<-tokens
				wg.Done()
			}()
			f(i)
			if done != nil {
				done()
			}
		}(i)
	}
	wg.Wait()
}
