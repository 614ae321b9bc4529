// Package messages defines the wire protocol spoken between agents: addresses,
// envelopes and the closed set of message bodies.
//
// An Envelope carries routing metadata and a raw JSON body. Bodies are a tagged
// variant: every concrete body type implements the unexported isBody marker so the
// set is closed, and agents dispatch on them with an exhaustive type switch.
//
// Wire format of an envelope:
//
//	{"id":"<uuid>","from":"customer","to":"dispatcher","performative":"request",
//	 "body":{"type":"delivery_request","order_id":"ORD001",
//	         "destination":{"lat":40.7128,"lon":-74.006}}}
//
// DecodeBody never panics on hostile input. Every failure wraps errs.ErrValueIsRequired
// or errs.ErrValueIsInvalid so callers can classify it with errors.Is.
package messages
