// Package customer models what the customer knows about its own orders.
package customer

import (
	"parcelflow/internal/core/domain/model/order"
)

// Entry is the customer's record of one order.
type Entry struct {
	LastStatus string
	Confirmed  bool
}

// Ledger is the customer's state table. Status values are kept verbatim so that
// statuses the customer does not understand are remembered rather than rejected.
type Ledger struct {
	entries map[order.ID]*Entry
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[order.ID]*Entry)}
}

// Requested records that a delivery request for id was sent.
func (l *Ledger) Requested(id order.ID) {
	l.entry(id)
}

// RecordUpdate stores the latest status for id and reports whether the customer
// should confirm the delivery.
func (l *Ledger) RecordUpdate(id order.ID, status string) bool {
	e := l.entry(id)
	e.LastStatus = status
	return status == string(order.Delivered)
}

// MarkConfirmed records that a confirmation for id was sent.
func (l *Ledger) MarkConfirmed(id order.ID) {
	l.entry(id).Confirmed = true
}

// Get returns a copy of the entry for id.
func (l *Ledger) Get(id order.ID) (Entry, bool) {
	e, ok := l.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (l *Ledger) entry(id order.ID) *Entry {
	e, ok := l.entries[id]
	if !ok {
		e = &Entry{}
		l.entries[id] = e
	}
	return e
}
