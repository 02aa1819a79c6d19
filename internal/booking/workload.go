package booking

import (
	"context"
	"strings"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

// assigner picks waiters for new reservations by workload.  It caches the
// waiter records it loads so multi-slot bookings see the assignments made
// earlier in the same call, and flushes all touched records at once after
// the booking has fully persisted.
type assigner struct {
	e     *Engine
	loc   *model.Location
	cache map[string]*model.Waiter
}

func (e *Engine) newAssigner(loc *model.Location) *assigner {
	return &assigner{e: e, loc: loc, cache: map[string]*model.Waiter{}}
}

// waiter returns the cached workload record for the email, loading it on
// first use.  A waiter with no record yet starts with an empty list.
func (a *assigner) waiter(ctx context.Context, email string) (*model.Waiter, error) {
	if w, ok := a.cache[email]; ok {
		return w, nil
	}
	w, err := a.e.waiters.Get(ctx, email)
	if err != nil {
		return nil, internal(err)
	}
	if w == nil {
		w = &model.Waiter{Email: email, LocationID: a.loc.ID}
	}
	a.cache[email] = w
	return w, nil
}

// pick returns the eligible waiter with the fewest reservations for the
// given location/date/slot.  Ties go to the waiter listed first on the
// location record, which makes assignment deterministic.
func (a *assigner) pick(ctx context.Context, date, slotName string) (*model.Waiter, error) {
	var best *model.Waiter
	bestLoad := -1
	for _, email := range a.loc.Waiters {
		w, err := a.waiter(ctx, email)
		if err != nil {
			return nil, err
		}
		load := workloadFor(w, date, a.loc.ID, slotName)
		if best == nil || load < bestLoad {
			best, bestLoad = w, load
		}
	}
	if best == nil {
		return nil, errf(KindConflict, "no waiters are assigned to this location")
	}
	return best, nil
}

// flush persists every waiter record touched during assignment.
func (a *assigner) flush(ctx context.Context) error {
	for _, w := range a.cache {
		if err := a.e.waiters.Put(ctx, w); err != nil {
			return internal(err)
		}
	}
	return nil
}

// workloadFor counts the waiter's reservations for the given date, location
// and slot.  The composite key encodes all three, so the count comes straight
// from the id list without store reads.
func workloadFor(w *model.Waiter, date, locationID, slotName string) int {
	n := 0
	for _, id := range w.ReservationIDs {
		parts := strings.Split(id, "|")
		if len(parts) != 4 {
			continue
		}
		if parts[0] == date && parts[1] == locationID && parts[3] == slotName {
			n++
		}
	}
	return n
}

// attach appends the reservation id to the waiter's workload record,
// creating the record on first booking.
func (e *Engine) attach(ctx context.Context, email, locationID, reservationID string) error {
	w, err := e.waiters.Get(ctx, email)
	if err != nil {
		return internal(err)
	}
	if w == nil {
		w = &model.Waiter{Email: email, LocationID: locationID}
	}
	if !w.Owns(reservationID) {
		w.ReservationIDs = append(w.ReservationIDs, reservationID)
	}
	if err := e.waiters.Put(ctx, w); err != nil {
		return internal(err)
	}
	return nil
}

// detach removes the reservation id from the waiter's workload record.
// Missing waiter records are ignored so cancellation never fails on a
// dangling assignment.
func (e *Engine) detach(ctx context.Context, email, reservationID string) error {
	w, err := e.waiters.Get(ctx, email)
	if err != nil {
		return internal(err)
	}
	if w == nil {
		return nil
	}
	w.RemoveReservation(reservationID)
	if err := e.waiters.Put(ctx, w); err != nil {
		return internal(err)
	}
	return nil
}
