package request

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrTransportRequestIsNotConstructed = errors.New(
	"TransportRequest must be created via NewTransportRequest or RestoreTransportRequest")

// Details carries the requester-supplied description of a shipment.
type Details struct {
	ScheduledTime time.Time
	Pickup        kernel.Location
	Drop          kernel.Location
	GoodsType     string
	WeightKg      decimal.Decimal
}

// TransportRequest is the aggregate root of the marketplace. It owns its bids and at most
// one job assignment, and every mutation of those goes through its methods.
//
// Invariants held after every method returns:
//   - at most one bid is Accepted
//   - the winner bid id is set iff the status is Confirmed, InTransit, or Completed
//   - a job assignment is only present while a winner is set
//
// All exported methods serialize on an internal mutex, so two goroutines racing
// AcceptBid on the same instance see exactly one success; the loser gets an
// errs.InvalidStateError. Across processes the persisted version plays the same role.
//
// Mutating methods return the domain events they produce. Callers publish them after the
// aggregate has been saved.
type TransportRequest struct {
	mu sync.Mutex

	id          kernel.UUID
	requesterID kernel.UUID
	details     Details
	status      Status
	winnerBidID *kernel.UUID
	bids        []*TransportBid
	assignment  *JobAssignment
	createdAt   time.Time
	version     int

	isConstructed bool
}

// NewTransportRequest creates an Open request. The scheduled time must be strictly after now.
func NewTransportRequest(
	id, requesterID kernel.UUID,
	details Details,
	now time.Time,
) (*TransportRequest, RequestCreated, error) {
	r := &TransportRequest{
		status:        Open,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setIDs(id, requesterID),
		r.setDetails(details),
		validateScheduledTime(details.ScheduledTime, now),
	); err != nil {
		return nil, RequestCreated{}, err
	}

	return r, RequestCreated{
		RequestID:      r.id,
		RequesterID:    r.requesterID,
		PickupLocation: r.details.Pickup,
		At:             r.createdAt,
	}, nil
}

// RestoreTransportRequest rebuilds a request from persistence and checks that the stored
// state satisfies the aggregate invariants. The scheduled time is not compared with the
// clock, so past requests can be loaded.
func RestoreTransportRequest(
	id, requesterID kernel.UUID,
	details Details,
	status Status,
	winnerBidID *kernel.UUID,
	bids []*TransportBid,
	assignment *JobAssignment,
	createdAt time.Time,
	version int,
) (*TransportRequest, error) {
	r := &TransportRequest{
		createdAt:     createdAt.UTC(),
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setIDs(id, requesterID),
		r.setDetails(details),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = status

	if winnerBidID != nil {
		w := *winnerBidID
		r.winnerBidID = &w
	}
	for _, b := range bids {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		r.bids = append(r.bids, b)
	}
	r.assignment = assignment

	if err := r.checkInvariants(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *TransportRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrTransportRequestIsNotConstructed
	}
	return nil
}

func (r *TransportRequest) ID() kernel.UUID {
	return r.id
}

func (r *TransportRequest) RequesterID() kernel.UUID {
	return r.requesterID
}

func (r *TransportRequest) ScheduledTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details.ScheduledTime
}

func (r *TransportRequest) Pickup() kernel.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details.Pickup
}

func (r *TransportRequest) Drop() kernel.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details.Drop
}

func (r *TransportRequest) GoodsType() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details.GoodsType
}

func (r *TransportRequest) WeightKg() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details.WeightKg
}

func (r *TransportRequest) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *TransportRequest) CreatedAt() time.Time {
	return r.createdAt
}

// Version is the optimistic concurrency token loaded from persistence.
func (r *TransportRequest) Version() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// WinnerBidID returns a copy of the winning bid id, or nil when there is no winner.
func (r *TransportRequest) WinnerBidID() *kernel.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.winnerBidID == nil {
		return nil
	}
	w := *r.winnerBidID
	return &w
}

// WinningBid returns the accepted bid, or nil when there is no winner.
func (r *TransportRequest) WinningBid() *TransportBid {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.winnerBidID == nil {
		return nil
	}
	b, _ := r.findBid(*r.winnerBidID)
	return b
}

// Bids returns the bids in submission order.
func (r *TransportRequest) Bids() []*TransportBid {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*TransportBid, len(r.bids))
	copy(out, r.bids)
	return out
}

func (r *TransportRequest) Bid(bidID kernel.UUID) (*TransportBid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findBid(bidID)
}

func (r *TransportRequest) Assignment() *JobAssignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.assignment
}

// EstimatedDistanceKm is the straight-line pickup to drop distance.
func (r *TransportRequest) EstimatedDistanceKm() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details.Pickup.DistanceKm(r.details.Drop)
}

// IsWithinRadiusOf reports whether the pickup lies within radiusKm of transporterLocation.
func (r *TransportRequest) IsWithinRadiusOf(transporterLocation kernel.Location, radiusKm float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return transporterLocation.IsWithinRadiusOf(r.details.Pickup, radiusKm)
}

// IsExpired reports whether the request is still waiting for a winner after its
// scheduled time has passed.
func (r *TransportRequest) IsExpired(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status.AcceptsBids() && !now.Before(r.details.ScheduledTime)
}

func (r *TransportRequest) StartBidding() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.status.StartBidding()
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

// SubmitBid adds a Pending bid. The first bid on an Open request moves it to Bidding.
func (r *TransportRequest) SubmitBid(
	transporterID kernel.UUID,
	amount kernel.Money,
	note string,
	now time.Time,
) (*TransportBid, BidSubmitted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.status.ReceiveBid()
	if err != nil {
		return nil, BidSubmitted{}, err
	}

	for _, b := range r.bids {
		if b.IsPending() && b.transporterID.IsEqual(transporterID) {
			return nil, BidSubmitted{}, errs.NewValueIsInvalidErrorWithCause("transport bid",
				fmt.Errorf("transporter %s already has pending bid %s", transporterID, b.id))
		}
	}

	bid, err := NewTransportBid(r.id, transporterID, amount, note, now)
	if err != nil {
		return nil, BidSubmitted{}, err
	}

	r.bids = append(r.bids, bid)
	r.status = next

	return bid, BidSubmitted{
		RequestID:     r.id,
		BidID:         bid.id,
		TransporterID: bid.transporterID,
		Amount:        bid.amount,
		At:            bid.bidTime,
	}, nil
}

// WithdrawBid withdraws a Pending bid. Authorization of the caller happens outside.
func (r *TransportRequest) WithdrawBid(bidID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, err := r.findBid(bidID)
	if err != nil {
		return err
	}
	return bid.withdraw()
}

// AcceptBid makes bidID the winner, rejects every other Pending bid, and confirms the
// request. It does not assign a vehicle or driver; see AssignJob.
func (r *TransportRequest) AcceptBid(bidID kernel.UUID, now time.Time) (BidAccepted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.status.Confirm()
	if err != nil {
		return BidAccepted{}, err
	}

	winner, err := r.findBid(bidID)
	if err != nil {
		return BidAccepted{}, err
	}
	if err := winner.accept(); err != nil {
		return BidAccepted{}, err
	}

	for _, b := range r.bids {
		if b != winner && b.IsPending() {
			// pending bids always accept the transition
			_ = b.reject()
		}
	}

	id := winner.id
	r.winnerBidID = &id
	r.status = next

	return BidAccepted{
		RequestID:     r.id,
		BidID:         winner.id,
		TransporterID: winner.transporterID,
		Amount:        winner.amount,
		At:            now.UTC(),
	}, nil
}

// AssignJob attaches an assignment built by NewJobAssignment. The request must be
// Confirmed and not yet assigned.
func (r *TransportRequest) AssignJob(assignment *JobAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != Confirmed {
		return errs.NewInvalidStateError("transport request", r.status.String(), "Assigned")
	}
	if assignment == nil || !assignment.IsValid() {
		return errs.NewValueIsRequiredError("job assignment")
	}
	if !assignment.requestID.IsEqual(r.id) {
		return errs.NewValueIsInvalidErrorWithCause("job assignment",
			fmt.Errorf("assignment belongs to request %s", assignment.requestID))
	}
	if r.assignment != nil {
		return errs.NewValueIsInvalidErrorWithCause("job assignment",
			fmt.Errorf("request %s is already assigned to vehicle %s", r.id, r.assignment.vehicleID))
	}

	r.assignment = assignment
	return nil
}

// StartTransit requires a Confirmed request with a valid job assignment.
func (r *TransportRequest) StartTransit() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.status.StartTransit()
	if err != nil {
		return err
	}
	if r.assignment == nil || !r.assignment.IsValid() {
		return errs.NewValueIsRequiredErrorWithCause("job assignment",
			fmt.Errorf("request %s has no vehicle and driver assigned", r.id))
	}

	r.status = next
	return nil
}

func (r *TransportRequest) Complete(now time.Time) (RequestCompleted, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.status.Complete()
	if err != nil {
		return RequestCompleted{}, err
	}
	r.status = next

	return RequestCompleted{RequestID: r.id, At: now.UTC()}, nil
}

// Cancel moves a pre-transit request to Cancelled. Pending bids are rejected, and the
// winner and job assignment are cleared so their vehicle and driver can be released.
func (r *TransportRequest) Cancel(now time.Time) (RequestCancelled, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.status
	next, err := r.status.Cancel()
	if err != nil {
		return RequestCancelled{}, err
	}

	for _, b := range r.bids {
		if b.IsPending() {
			_ = b.reject()
		}
	}

	event := RequestCancelled{RequestID: r.id, PreviousStatus: previous, At: now.UTC()}
	if r.assignment != nil {
		vehicleID, driverID := r.assignment.vehicleID, r.assignment.driverID
		event.ReleasedVehicleID = &vehicleID
		event.ReleasedDriverID = &driverID
	}

	r.assignment = nil
	r.winnerBidID = nil
	r.status = next

	return event, nil
}

func (r *TransportRequest) findBid(bidID kernel.UUID) (*TransportBid, error) {
	for _, b := range r.bids {
		if b.id.IsEqual(bidID) {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("transport bid", bidID.String())
}

func (r *TransportRequest) checkInvariants() error {
	var errList []error

	if r.status.HasWinner() != (r.winnerBidID != nil) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("winner bid",
			fmt.Errorf("status %s does not match winner presence", r.status)))
	}

	accepted := 0
	for _, b := range r.bids {
		if !b.requestID.IsEqual(r.id) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("transport bid",
				fmt.Errorf("bid %s belongs to request %s", b.id, b.requestID)))
		}
		if b.status == BidStatusAccepted {
			accepted++
		}
	}
	if accepted > 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("transport bid",
			fmt.Errorf("%d bids are accepted", accepted)))
	}

	if r.winnerBidID != nil {
		winner, err := r.findBid(*r.winnerBidID)
		if err != nil {
			errList = append(errList, err)
		} else if winner.status != BidStatusAccepted {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("winner bid",
				fmt.Errorf("bid %s is %s", winner.id, winner.status)))
		}
	}

	if r.assignment != nil {
		if r.winnerBidID == nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("job assignment",
				errors.New("assignment present without a winning bid")))
		}
		if !r.assignment.IsValid() || !r.assignment.requestID.IsEqual(r.id) {
			errList = append(errList, errs.NewValueIsInvalidError("job assignment"))
		}
	}
	if (r.status == InTransit || r.status == Completed) && r.assignment == nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("job assignment",
			fmt.Errorf("status %s requires an assignment", r.status)))
	}

	return errors.Join(errList...)
}

func (r *TransportRequest) setIDs(id, requesterID kernel.UUID) error {
	if err := errors.Join(id.Validate(), requesterID.Validate()); err != nil {
		return err
	}
	r.id = id
	r.requesterID = requesterID
	return nil
}

func (r *TransportRequest) setDetails(details Details) error {
	details.GoodsType = strings.TrimSpace(details.GoodsType)

	var errList []error
	if details.ScheduledTime.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("scheduled time"))
	}
	if err := details.Pickup.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("pickup location", err))
	}
	if err := details.Drop.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("drop location", err))
	}
	if details.GoodsType == "" {
		errList = append(errList, errs.NewValueIsRequiredError("goods type"))
	}
	if !details.WeightKg.IsPositive() {
		errList = append(errList, errs.NewValueIsOutOfRangeError("weight kg", details.WeightKg.String(), "greater than 0", "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	details.ScheduledTime = details.ScheduledTime.UTC()
	r.details = details
	return nil
}

func validateScheduledTime(scheduled, now time.Time) error {
	if scheduled.IsZero() || scheduled.After(now) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("scheduled time",
		fmt.Errorf("%s is not after %s", scheduled.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339)))
}
