// Package agents implements the four cooperating actors of the delivery workflow:
// Customer, Dispatcher, DeliveryUnit and RoutePlanner.
//
// Every agent is a Runtime over its own state table. Agents share nothing and talk
// only by sending envelopes through a ports.Transport:
//
//	Customer ─delivery_request─> Dispatcher ─assign_delivery─> DeliveryUnit
//	DeliveryUnit ─route_request / reroute_request─> RoutePlanner
//	RoutePlanner ─route_response─> DeliveryUnit ─status_update─> Dispatcher
//	Dispatcher ─delivery_update─> Customer ─delivery_confirmed─> Dispatcher
//
// Handlers decode the body and dispatch on its concrete type. Malformed or
// unexpected messages are returned as errors, logged by the runtime and dropped.
package agents
