// Package services holds domain logic that spans the TransportRequest and
// TransporterProfile aggregates.
//
// The package includes:
//   - BidAllocator: accepts the cheapest bid from a verified transporter that serves the pickup area
package services
