package booking

import (
	"context"

	"github.com/tablebooker/restaurant-reservation/internal/model"
	"github.com/tablebooker/restaurant-reservation/internal/slot"
)

// cancelCutoffMin is how long before a slot's start same-day cancellation
// stays open.
const cancelCutoffMin = 30

// rewrite moves a reservation onto the given replacement records: claim the
// new keys, drop the original, and relink the waiter's workload list.  When
// the new range covers the original's own key that record is overwritten
// instead of claimed, so editing only the guest count of an existing slot is
// not a conflict with itself.
func (e *Engine) rewrite(ctx context.Context, original *model.Reservation, recs []*model.Reservation) error {
	var reuse *model.Reservation
	var fresh []*model.Reservation
	for _, rec := range recs {
		if rec.ID == original.ID {
			reuse = rec
		} else {
			fresh = append(fresh, rec)
		}
	}
	if err := e.claimRange(ctx, fresh); err != nil {
		return err
	}
	if reuse != nil {
		if err := e.reservations.Put(ctx, reuse); err != nil {
			return internal(err)
		}
	} else if err := e.reservations.Delete(ctx, original.ID); err != nil {
		return internal(err)
	}

	w, err := e.waiters.Get(ctx, original.WaiterID)
	if err != nil {
		return internal(err)
	}
	if w == nil {
		w = &model.Waiter{Email: original.WaiterID, LocationID: original.LocationID}
	}
	w.RemoveReservation(original.ID)
	for _, rec := range recs {
		if !w.Owns(rec.ID) {
			w.ReservationIDs = append(w.ReservationIDs, rec.ID)
		}
	}
	if err := e.waiters.Put(ctx, w); err != nil {
		return internal(err)
	}
	return nil
}

// replacements builds the new records for a moved reservation, carrying over
// the subject, guest count, pre-order, booking timestamp, waiter and
// originator from the original.
func (p *placement) replacements(original *model.Reservation, guests int) []*model.Reservation {
	recs := p.records(original.UserID, original.BookedBy, original.BookedAt)
	for _, rec := range recs {
		rec.Guests = guests
		rec.PreOrder = original.PreOrder
		rec.FeedbackID = original.FeedbackID
		rec.WaiterID = original.WaiterID
	}
	return recs
}

// Edit changes an existing reservation's table, time range or guest count on
// the customer path.  Location and date never move here; postponing to a
// different date is a waiter operation.
func (e *Engine) Edit(ctx context.Context, id string, req EditRequest, customerEmail string) ([]ReservationResponse, error) {
	res, err := e.reservations.Get(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	if res == nil {
		return nil, errf(KindNotFound, "reservation not found")
	}
	if res.UserID != customerEmail {
		return nil, errf(KindForbidden, "reservation belongs to another customer")
	}
	if res.Cancelled() {
		return nil, errf(KindState, "cannot modify a cancelled reservation")
	}

	p, err := e.validatePlacement(ctx, res.LocationID, req.TableID, res.Date, req.TimeFrom, req.TimeTo, req.Guests)
	if err != nil {
		return nil, err
	}

	recs := p.replacements(res, req.Guests)
	if err := e.rewrite(ctx, res, recs); err != nil {
		return nil, err
	}

	out := make([]ReservationResponse, 0, len(recs))
	for _, rec := range recs {
		e.publish("reservation.updated", rec, customerEmail)
		out = append(out, e.response(rec, p.loc.Address, ""))
	}
	return out, nil
}

// Postpone moves a reservation to a new date, time range or table on the
// waiter path.  Only the assigned waiter may postpone, only while the
// reservation is still Reserved, and the new placement must sit at the
// waiter's location with room for the original party.
func (e *Engine) Postpone(ctx context.Context, id string, req PostponeRequest, waiterEmail string) ([]ReservationResponse, error) {
	res, err := e.reservations.Get(ctx, id)
	if err != nil {
		return nil, internal(err)
	}
	if res == nil {
		return nil, errf(KindNotFound, "reservation not found")
	}
	if res.WaiterID != waiterEmail {
		return nil, errf(KindForbidden, "reservation is assigned to another waiter")
	}
	if res.Cancelled() {
		return nil, errf(KindState, "only reserved bookings can be postponed")
	}
	if res.Date == e.today() {
		if s, ok := slot.ByName(res.TimeSlot); ok && s.StartMin <= e.minuteNow() {
			return nil, errf(KindState, "reservation has already started")
		}
	}

	p, err := e.validatePlacement(ctx, res.LocationID, req.TableID, req.Date, req.TimeFrom, req.TimeTo, res.Guests)
	if err != nil {
		return nil, err
	}
	if req.Date == e.today() && p.from.StartMin < e.minuteNow() {
		return nil, errf(KindValidation, "new start time has already passed")
	}

	recs := p.replacements(res, res.Guests)
	if err := e.rewrite(ctx, res, recs); err != nil {
		return nil, err
	}

	out := make([]ReservationResponse, 0, len(recs))
	for _, rec := range recs {
		e.publish("reservation.postponed", rec, waiterEmail)
		out = append(out, e.response(rec, p.loc.Address, ""))
	}
	return out, nil
}

// CancelByCustomer cancels the customer's own reservation.  Future dates
// cancel unconditionally; today's reservations close 30 minutes before the
// slot starts; past dates never cancel.
func (e *Engine) CancelByCustomer(ctx context.Context, id, customerEmail string) error {
	res, err := e.reservations.Get(ctx, id)
	if err != nil {
		return internal(err)
	}
	if res == nil {
		return errf(KindNotFound, "reservation not found")
	}
	if res.UserID != customerEmail {
		return errf(KindForbidden, "reservation belongs to another customer")
	}
	if res.Cancelled() {
		return errf(KindState, "reservation is already cancelled")
	}
	today := e.today()
	switch {
	case res.Date < today:
		return errf(KindValidation, "cannot cancel a past reservation")
	case res.Date == today:
		s, ok := slot.ByName(res.TimeSlot)
		if !ok {
			return errf(KindInternal, "reservation %s has unknown slot %s", id, res.TimeSlot)
		}
		if e.minuteNow() >= s.StartMin-cancelCutoffMin {
			return errf(KindValidation, "cancellation closes %d minutes before the slot starts", cancelCutoffMin)
		}
	}
	return e.cancel(ctx, res, customerEmail)
}

// CancelByWaiter cancels a reservation from the acting waiter's workload
// list.  Only derived-Reserved reservations qualify; an in-window one reads
// InProgress and stays.
func (e *Engine) CancelByWaiter(ctx context.Context, id, waiterEmail string) error {
	res, err := e.reservations.Get(ctx, id)
	if err != nil {
		return internal(err)
	}
	if res == nil {
		return errf(KindNotFound, "reservation not found")
	}
	if e.displayStatus(res) != model.StatusReserved {
		return errf(KindState, "only reserved bookings can be cancelled")
	}
	w, err := e.waiters.Get(ctx, waiterEmail)
	if err != nil {
		return internal(err)
	}
	if w == nil || !w.Owns(id) {
		return errf(KindForbidden, "reservation is not on your list")
	}
	return e.cancel(ctx, res, waiterEmail)
}

func (e *Engine) cancel(ctx context.Context, res *model.Reservation, actor string) error {
	res.Status = model.StatusCancelled
	if err := e.reservations.Put(ctx, res); err != nil {
		return internal(err)
	}
	if err := e.detach(ctx, res.WaiterID, res.ID); err != nil {
		return err
	}
	e.publish("reservation.cancelled", res, actor)
	return nil
}
