// Package unit models the delivery unit: its beliefs (position, traffic),
// its desire (the order being delivered), its intentions (navigate, reroute) and
// the per-order progress table.
//
// Business rules:
//   - An order id is accepted at most once
//   - Each processed route response adds exactly one attempt
//   - A traffic-flagged order always needs a second route before delivery
//   - Delivered is terminal; later routes for the order are rejected
package unit
