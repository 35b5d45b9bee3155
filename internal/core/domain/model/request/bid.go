package request

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// MaxBidNoteLength bounds the free-text note a transporter may attach to a bid.
const MaxBidNoteLength = 500

var ErrTransportBidIsNotConstructed = errors.New("TransportBid must be created via NewTransportBid or RestoreTransportBid")

// TransportBid is a transporter's priced offer to fulfil a TransportRequest.
//
// Bids are entities inside the TransportRequest aggregate. Their status changes only
// through the owning request, so the accept/reject/withdraw transitions are unexported.
type TransportBid struct {
	id            kernel.UUID
	requestID     kernel.UUID
	transporterID kernel.UUID
	amount        kernel.Money
	note          string
	bidTime       time.Time
	status        BidStatus

	isConstructed bool
}

// NewTransportBid creates a Pending bid. The amount must be strictly positive.
func NewTransportBid(
	requestID, transporterID kernel.UUID,
	amount kernel.Money,
	note string,
	bidTime time.Time,
) (*TransportBid, error) {
	return RestoreTransportBid(kernel.NewUUID(), requestID, transporterID, amount, note, bidTime, BidPending)
}

// RestoreTransportBid rebuilds a bid from persistence.
func RestoreTransportBid(
	id, requestID, transporterID kernel.UUID,
	amount kernel.Money,
	note string,
	bidTime time.Time,
	status BidStatus,
) (*TransportBid, error) {
	b := &TransportBid{isConstructed: true}

	if err := errors.Join(
		b.setIDs(id, requestID, transporterID),
		b.setAmount(amount),
		b.setNote(note),
		b.setBidTime(bidTime),
		b.setStatus(status),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *TransportBid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrTransportBidIsNotConstructed
	}
	return nil
}

func (b *TransportBid) ID() kernel.UUID {
	return b.id
}

func (b *TransportBid) RequestID() kernel.UUID {
	return b.requestID
}

func (b *TransportBid) TransporterID() kernel.UUID {
	return b.transporterID
}

func (b *TransportBid) Amount() kernel.Money {
	return b.amount
}

func (b *TransportBid) Note() string {
	return b.note
}

func (b *TransportBid) BidTime() time.Time {
	return b.bidTime
}

func (b *TransportBid) Status() BidStatus {
	return b.status
}

func (b *TransportBid) IsPending() bool {
	return b.status == BidPending
}

func (b *TransportBid) accept() error {
	return b.transition(b.status.Accept)
}

func (b *TransportBid) reject() error {
	return b.transition(b.status.Reject)
}

func (b *TransportBid) withdraw() error {
	return b.transition(b.status.Withdraw)
}

func (b *TransportBid) transition(next func() (BidStatus, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	b.status = status
	return nil
}

func (b *TransportBid) setIDs(id, requestID, transporterID kernel.UUID) error {
	if err := errors.Join(id.Validate(), requestID.Validate(), transporterID.Validate()); err != nil {
		return err
	}
	b.id = id
	b.requestID = requestID
	b.transporterID = transporterID
	return nil
}

func (b *TransportBid) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errs.NewValueIsOutOfRangeError("bid amount", amount.String(), "greater than 0", "unbounded")
	}
	b.amount = amount
	return nil
}

func (b *TransportBid) setNote(note string) error {
	note = strings.TrimSpace(note)
	if len([]rune(note)) > MaxBidNoteLength {
		return errs.NewValueIsOutOfRangeError("bid note length", len([]rune(note)), 0, MaxBidNoteLength)
	}
	b.note = note
	return nil
}

func (b *TransportBid) setBidTime(bidTime time.Time) error {
	if bidTime.IsZero() {
		return errs.NewValueIsRequiredError("bid time")
	}
	b.bidTime = bidTime.UTC()
	return nil
}

func (b *TransportBid) setStatus(status BidStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}
