package repository

import (
	"context"
	"sync"

	"lending-core/domain"
)

// DefaultMaxMemoryRecords bounds the in-memory history when no size is given.
const DefaultMaxMemoryRecords = 1000

// LoanRepositoryMemory is an in-memory implementation of CalculationRepository.
// It keeps at most maxRecords calculations in a ring; the oldest are dropped first.
type LoanRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.CalculationRecord
	next int
	full bool
}

// NewLoanRepositoryMemory creates a new in-memory loan repository holding up
// to maxRecords calculations.
func NewLoanRepositoryMemory(maxRecords int) *LoanRepositoryMemory {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxMemoryRecords
	}
	return &LoanRepositoryMemory{
		data: make([]domain.CalculationRecord, maxRecords),
	}
}

// Save stores the calculation in memory, overwriting the oldest one when full.
func (r *LoanRepositoryMemory) Save(_ context.Context, record domain.CalculationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[r.next] = record
	r.next = (r.next + 1) % len(r.data)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

func (r *LoanRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.len()
}

func (r *LoanRepositoryMemory) len() int {
	if r.full {
		return len(r.data)
	}
	return r.next
}

// Recent returns up to limit records, newest first.
func (r *LoanRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.len()
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.CalculationRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.data)) % len(r.data)
		out = append(out, r.data[idx])
	}
	return out, nil
}
