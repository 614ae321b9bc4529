package order

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Book is the dispatcher's state table: every order it has heard of, keyed by id.
//
// A Book belongs to exactly one dispatcher and is only touched from that
// dispatcher's message loop, so it carries no lock.
type Book struct {
	orders map[ID]*Order
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{orders: make(map[ID]*Order)}
}

// Get returns the tracked order for id.
func (b *Book) Get(id ID) (*Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// IsTracked reports whether id is known.
func (b *Book) IsTracked(id ID) bool {
	_, ok := b.orders[id]
	return ok
}

// Track adds o, keeping the existing record if the id is already known.
// It reports whether o was added.
func (b *Book) Track(o *Order) bool {
	if _, ok := b.orders[o.ID()]; ok {
		return false
	}
	b.orders[o.ID()] = o
	return true
}

// GetOrTrack returns the record for id, creating a first-seen record when absent.
func (b *Book) GetOrTrack(id ID) (*Order, error) {
	if o, ok := b.orders[id]; ok {
		return o, nil
	}

	o, err := TrackFirstSeen(id)
	if err != nil {
		return nil, err
	}
	b.orders[id] = o
	return o, nil
}

// Len returns the number of tracked orders.
func (b *Book) Len() int {
	return len(b.orders)
}

// Snapshot returns copies of every tracked order sorted by id.
func (b *Book) Snapshot() []*Order {
	return sortedClones(lo.Values(b.orders))
}

// Confirmed returns copies of the confirmed orders sorted by id.
func (b *Book) Confirmed() []*Order {
	return sortedClones(lo.Filter(lo.Values(b.orders), func(o *Order, _ int) bool {
		return o.Status() == Confirmed
	}))
}

// Evict forgets the given ids. Only confirmed orders are removed; anything else is
// still part of a live workflow and stays.
func (b *Book) Evict(ids ...ID) int {
	evicted := 0
	for _, id := range ids {
		if o, ok := b.orders[id]; ok && o.Status() == Confirmed {
			delete(b.orders, id)
			evicted++
		}
	}
	return evicted
}

func sortedClones(orders []*Order) []*Order {
	out := lo.Map(orders, func(o *Order, _ int) *Order { return o.Clone() })
	slices.SortFunc(out, func(a, b *Order) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}
