package order

import (
	"strings"

	"parcelflow/internal/pkg/errs"
)

// ErrIDIsRequired is returned for an empty order identifier.
var ErrIDIsRequired = errs.NewValueIsRequiredError("order_id")

// ID is the opaque order identifier chosen by the customer, e.g. "ORD001".
// It is unique within a workflow run and never interpreted by the system.
type ID string

// NewID trims surrounding whitespace and rejects empty identifiers.
func NewID(s string) (ID, error) {
	id := ID(strings.TrimSpace(s))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate rejects the empty identifier.
func (id ID) Validate() error {
	if id == "" {
		return ErrIDIsRequired
	}
	return nil
}

func (id ID) String() string {
	return string(id)
}
