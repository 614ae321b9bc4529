package services

import (
	"slices"
	"strings"

	"parcelflow/internal/core/domain/model/order"

	"github.com/samber/lo"
)

// TrafficPolicy decides which orders run into simulated traffic on their first route.
//
// The zero value flags nothing. Policies are immutable after construction and safe
// to share between goroutines.
type TrafficPolicy struct {
	flagged map[order.ID]struct{}
}

// NewTrafficPolicy flags the given ids. Blank ids are ignored.
func NewTrafficPolicy(ids ...order.ID) TrafficPolicy {
	ids = lo.FilterMap(ids, func(id order.ID, _ int) (order.ID, bool) {
		trimmed, err := order.NewID(string(id))
		return trimmed, err == nil
	})
	return TrafficPolicy{
		flagged: lo.SliceToMap(ids, func(id order.ID) (order.ID, struct{}) {
			return id, struct{}{}
		}),
	}
}

// ParseTrafficPolicy builds a policy from a comma separated id list such as "ORD002,ORD007".
func ParseTrafficPolicy(list string) TrafficPolicy {
	ids := lo.Map(strings.Split(list, ","), func(s string, _ int) order.ID {
		return order.ID(s)
	})
	return NewTrafficPolicy(ids...)
}

// IsFlagged reports whether id is subject to simulated traffic.
func (p TrafficPolicy) IsFlagged(id order.ID) bool {
	_, ok := p.flagged[id]
	return ok
}

// Flagged returns the flagged ids, sorted.
func (p TrafficPolicy) Flagged() []order.ID {
	ids := lo.Keys(p.flagged)
	slices.Sort(ids)
	return ids
}
