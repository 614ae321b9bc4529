// Package order models the dispatcher's view of delivery orders.
//
// The package includes:
//   - ID: the opaque customer-chosen order identifier
//   - Status: pending → assigned → navigating → delivered → confirmed
//   - Order: one tracked order, whose status only changes through RecordStatus
//     (reports from the delivery unit) and Confirm (the customer's acknowledgement)
//   - Book: the dispatcher's state table keyed by ID
//
// Key business rules:
//   - Confirmed is terminal; later status reports never alter it
//   - RecordStatus hands back the prior status so notification decisions are taken
//     against the state as it was before the report
//   - Unknown ids are accepted on a first-seen basis rather than rejected
package order
