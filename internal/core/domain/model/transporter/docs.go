// Package transporter provides the TransporterProfile aggregate and the fleet it owns.
//
// The package includes:
//   - TransporterProfile: a company or owner-operator with verification, rating, and
//     service-area state
//   - Driver: a licensed person with an Active/Suspended/Inactive lifecycle
//   - Vehicle: a registered vehicle with capacity in tons and an
//     Active/Maintenance/InTrip/Inactive lifecycle
//
// Availability of drivers and vehicles is derived from status and document expiry at a
// caller-supplied instant. Nothing in this package reads the wall clock.
package transporter
