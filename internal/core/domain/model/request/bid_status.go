package request

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// BidStatus is the lifecycle state of a TransportBid. Pending is the only non-terminal
// state; Accepted, Rejected, and Withdrawn are final.
type BidStatus int

const (
	BidStatusUnknown BidStatus = iota
	BidPending
	BidStatusAccepted
	BidRejected
	BidWithdrawn
)

func getBidStatusStrings() map[BidStatus]string {
	return map[BidStatus]string{
		BidStatusUnknown:  "Unknown",
		BidPending:        "Pending",
		BidStatusAccepted: "Accepted",
		BidRejected:       "Rejected",
		BidWithdrawn:      "Withdrawn",
	}
}

func (s BidStatus) Validate() error {
	if s <= BidStatusUnknown || s > BidWithdrawn {
		return errs.NewValueIsInvalidErrorWithCause("bid status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s BidStatus) String() string {
	if str, ok := getBidStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s BidStatus) Accept() (BidStatus, error) {
	return s.decide(BidStatusAccepted)
}

func (s BidStatus) Reject() (BidStatus, error) {
	return s.decide(BidRejected)
}

func (s BidStatus) Withdraw() (BidStatus, error) {
	return s.decide(BidWithdrawn)
}

func (s BidStatus) decide(to BidStatus) (BidStatus, error) {
	if s != BidPending {
		return s, errs.NewInvalidStateError("transport bid", s.String(), to.String())
	}
	return to, nil
}
