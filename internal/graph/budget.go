package graph

import "sync"

// Budget caps the number of outbound calls a single run may make. It is an
// explicit object handed to the client rather than hidden global state, so a
// cap can be asserted on in tests and scoped to one aggregation run.
type Budget struct {
	mu        sync.Mutex
	remaining int
	unlimited bool
}

// NewBudget creates a budget of n outbound calls. n <= 0 means unlimited.
func NewBudget(n int) *Budget {
	return &Budget{remaining: n, unlimited: n <= 0}
}

// Spend consumes one call from the budget. It returns ErrBudgetExhausted
// once the budget is gone; the caller must not issue the request.
func (b *Budget) Spend() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unlimited {
		return nil
	}
	if b.remaining <= 0 {
		return ErrBudgetExhausted
	}
	b.remaining--
	return nil
}

// Remaining reports how many calls are left. Unlimited budgets report -1.
func (b *Budget) Remaining() int {
	if b == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unlimited {
		return -1
	}
	return b.remaining
}
