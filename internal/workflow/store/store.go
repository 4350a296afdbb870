// Package store owns the posted-invoice ledger. The store lives on
// the fx graph for the life of the process; nothing global.
package store

import (
	"sync"

	invoicedomain "github.com/auroradigital/billingdesk/internal/invoice/domain"
	workflowdomain "github.com/auroradigital/billingdesk/internal/workflow/domain"
)

// Store is a mutex-guarded list of posted invoice records, newest
// first. Every boundary copies so callers never alias store memory.
type Store struct {
	mu      sync.Mutex
	records []workflowdomain.InvoiceRecord
}

func New() *Store {
	return &Store{}
}

// Seed replaces the ledger contents. Intended for startup seeding.
func (s *Store) Seed(records []workflowdomain.InvoiceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]workflowdomain.InvoiceRecord(nil), records...)
}

// Prepend inserts a new record at the head.
func (s *Store) Prepend(record workflowdomain.InvoiceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]workflowdomain.InvoiceRecord{record}, s.records...)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (workflowdomain.InvoiceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.ID == id {
			return copyRecord(record), true
		}
	}
	return workflowdomain.InvoiceRecord{}, false
}

// Mutate applies fn to the record with the given id under the lock and
// returns the resulting copy. Unknown ids report false.
func (s *Store) Mutate(id string, fn func(*workflowdomain.InvoiceRecord)) (workflowdomain.InvoiceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			fn(&s.records[i])
			return copyRecord(s.records[i]), true
		}
	}
	return workflowdomain.InvoiceRecord{}, false
}

// List returns copies of every record, newest first.
func (s *Store) List() []workflowdomain.InvoiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]workflowdomain.InvoiceRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, copyRecord(record))
	}
	return out
}

func copyRecord(record workflowdomain.InvoiceRecord) workflowdomain.InvoiceRecord {
	clone := record
	clone.LineItems = append([]invoicedomain.LineItem(nil), record.LineItems...)
	return clone
}
