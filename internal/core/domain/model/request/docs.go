// Package request models the TransportRequest aggregate: the shipment a requester posts,
// the bids transporters submit against it, and the job assignment that binds the winning
// transporter's vehicle and driver to it.
//
// The aggregate is the only entry point for changing bids and assignments. Its methods
// enforce the request and bid state machines and return domain events as values, which
// the application layer publishes after a successful save.
package request
