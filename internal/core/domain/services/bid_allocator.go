package services

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/transporter"
)

// ErrEligibleBidNotFound is returned when no pending bid comes from a verified transporter
// whose service radius covers the pickup location.
var ErrEligibleBidNotFound = errors.New("eligible bid not found")

// BidAllocator is the automatic allocation policy: it accepts the cheapest eligible bid
// on behalf of the requester.
//
// A bid is eligible when it is Pending and its transporter is verified and serves the
// request pickup location. Among eligible bids the lowest amount wins; ties go to the bid
// submitted first.
//
// Example usage:
//
//	allocator := services.NewBidAllocator()
//	winner, accepted, err := allocator.Allocate(req, profiles, clock.Now())
//	if errors.Is(err, services.ErrEligibleBidNotFound) {
//	    // leave the request open for manual acceptance
//	}
type BidAllocator struct{}

func NewBidAllocator() BidAllocator {
	return BidAllocator{}
}

// Allocate picks the winning bid and accepts it on req. profiles must contain the
// profile of every transporter that should be considered; bids from transporters missing
// in profiles are skipped.
func (a BidAllocator) Allocate(
	req *request.TransportRequest,
	profiles []*transporter.TransporterProfile,
	now time.Time,
) (*request.TransportBid, request.BidAccepted, error) {
	if err := req.Validate(); err != nil {
		return nil, request.BidAccepted{}, err
	}
	if _, err := req.Status().Confirm(); err != nil {
		return nil, request.BidAccepted{}, err
	}

	best, err := a.findBestBid(req, profiles)
	if err != nil {
		return nil, request.BidAccepted{}, err
	}

	accepted, err := req.AcceptBid(best.ID(), now)
	if err != nil {
		return nil, request.BidAccepted{}, err
	}

	return best, accepted, nil
}

func (a BidAllocator) findBestBid(
	req *request.TransportRequest,
	profiles []*transporter.TransporterProfile,
) (*request.TransportBid, error) {
	byID := make(map[string]*transporter.TransporterProfile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		byID[p.ID().String()] = p
	}

	pickup := req.Pickup()

	var best *request.TransportBid
	for _, bid := range req.Bids() {
		if !bid.IsPending() {
			continue
		}

		profile, ok := byID[bid.TransporterID().String()]
		if !ok {
			continue
		}

		serves, err := profile.CanServe(pickup)
		if err != nil {
			return nil, err
		}
		if !serves {
			continue
		}

		if best == nil || isBetterBid(bid, best) {
			best = bid
		}
	}

	if best == nil {
		return nil, ErrEligibleBidNotFound
	}

	return best, nil
}

func isBetterBid(candidate, current *request.TransportBid) bool {
	c, b := candidate.Amount().Amount(), current.Amount().Amount()
	if !c.Equal(b) {
		return c.LessThan(b)
	}
	return candidate.BidTime().Before(current.BidTime())
}
