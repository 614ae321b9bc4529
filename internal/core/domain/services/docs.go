// Package services provides stateless domain services that do not belong to a single
// aggregate.
//
// The package includes:
//   - RoutePlanner: deterministic stub route computation (regular and alternative)
//   - TrafficPolicy: the injected set of orders that hit simulated traffic
//
// Both are pure values; agents hold them and call them from their message loops.
package services
