// Package kernel provides the value objects shared by every part of parcelflow.
//
// The package includes:
//   - Coordinate: an immutable (latitude, longitude) pair compared by exact value
//   - UUID: a value object identifying message envelopes
//
// Both types are immutable, safe to copy between goroutines, and reject their zero
// value in Validate so an unset field is never mistaken for a real location or id.
package kernel
