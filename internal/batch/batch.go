// Package batch runs collections of independent units of work with a fixed
// bound on how many are in flight at once.
//
// Unlike errgroup, a failing unit neither cancels nor blocks the others:
// every unit runs to completion and reports its own outcome. Retrying is the
// unit's own concern, not this package's.
package batch

import (
	"errors"
	"sync"
)

// ErrInvalidLimit indicates a non-positive concurrency limit.
var ErrInvalidLimit = errors.New("batch: limit must be at least 1")

// Outcome is the result of one unit: either a value or an error.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Fulfilled reports whether the unit completed without error.
func (o Outcome[T]) Fulfilled() bool {
	return o.Err == nil
}

// Run executes every unit with at most limit in flight simultaneously and
// returns one Outcome per unit, in submission order.
//
// No unit starts before Run is called and none outlives its return. A limit
// of len(units) or more behaves as full parallel execution. An empty unit
// list returns an empty outcome list immediately.
func Run[T any](units []func() (T, error), limit int) ([]Outcome[T], error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	if len(units) == 0 {
		return []Outcome[T]{}, nil
	}

	outcomes := make([]Outcome[T], len(units))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, unit := range units {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i].Value, outcomes[i].Err = unit()
		}()
	}

	wg.Wait()
	return outcomes, nil
}
