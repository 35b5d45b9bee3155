package request

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a TransportRequest.
//
// State transitions:
//
//	Open ──StartBidding / first bid──> Bidding
//	Open, Bidding ──AcceptBid──> Confirmed ──StartTransit──> InTransit ──Complete──> Completed
//	Open, Bidding, Confirmed ──Cancel──> Cancelled
//
// Completed and Cancelled are terminal. Every other transition fails with an
// errs.InvalidStateError carrying the current and attempted states.
type Status int

const (
	StatusUnknown Status = iota
	Open
	Bidding
	Confirmed
	InTransit
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Open:          "Open",
		Bidding:       "Bidding",
		Confirmed:     "Confirmed",
		InTransit:     "InTransit",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// Validate checks that s is one of the defined statuses other than StatusUnknown.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus accepts the String() form of a defined status.
func ParseStatus(str string) (Status, error) {
	for s, name := range getStatusStrings() {
		if s != StatusUnknown && name == str {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", str))
}

// HasWinner reports whether a request in this status must carry a winning bid.
func (s Status) HasWinner() bool {
	return s == Confirmed || s == InTransit || s == Completed
}

// AcceptsBids reports whether bids may be submitted or accepted in this status.
func (s Status) AcceptsBids() bool {
	return s == Open || s == Bidding
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) StartBidding() (Status, error) {
	return s.move([]Status{Open}, Bidding)
}

// ReceiveBid is the implicit transition taken when a bid is submitted.
func (s Status) ReceiveBid() (Status, error) {
	return s.move([]Status{Open, Bidding}, Bidding)
}

func (s Status) Confirm() (Status, error) {
	return s.move([]Status{Open, Bidding}, Confirmed)
}

func (s Status) StartTransit() (Status, error) {
	return s.move([]Status{Confirmed}, InTransit)
}

func (s Status) Complete() (Status, error) {
	return s.move([]Status{InTransit}, Completed)
}

func (s Status) Cancel() (Status, error) {
	return s.move([]Status{Open, Bidding, Confirmed}, Cancelled)
}

func (s Status) move(from []Status, to Status) (Status, error) {
	for _, allowed := range from {
		if s == allowed {
			return to, nil
		}
	}
	return s, errs.NewInvalidStateError("transport request", s.String(), to.String())
}
