// Package booking implements the slot-booking and reservation-lifecycle
// engine.  It allocates fixed daily slots to tables, prevents double booking
// through atomic conditional inserts on deterministic composite keys,
// balances waiter workload, and drives the postpone/cancel state machine for
// both customer and waiter actors.  All persistence goes through the narrow
// store interfaces in stores.go so tests can run the engine against
// in-memory fakes.
package booking

import (
	"context"
	"time"

	"github.com/tablebooker/restaurant-reservation/internal/model"
	"github.com/tablebooker/restaurant-reservation/internal/slot"
)

const (
	dateLayout   = "2006-01-02"
	bookedLayout = "15:04:05"
)

// Engine is the reservation core.  Now must return restaurant-local time;
// every date and cutoff comparison in the engine happens in that frame.
type Engine struct {
	reservations ReservationStore
	locations    LocationStore
	tables       TableStore
	waiters      WaiterStore
	users        UserDirectory
	events       EventSink
	now          func() time.Time
}

// NewEngine wires an Engine.  events may be nil when no queue is attached;
// now may be nil to use the system clock in UTC, which is only appropriate
// in tests.
func NewEngine(res ReservationStore, loc LocationStore, tab TableStore, wtr WaiterStore, users UserDirectory, events EventSink, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		reservations: res,
		locations:    loc,
		tables:       tab,
		waiters:      wtr,
		users:        users,
		events:       events,
		now:          now,
	}
}

func (e *Engine) today() string { return e.now().Format(dateLayout) }

// minuteNow is the current restaurant-local time as minutes since midnight.
func (e *Engine) minuteNow() int {
	t := e.now()
	return t.Hour()*60 + t.Minute()
}

// placement is a validated booking target: a location, a table within it
// and an inclusive slot range on a date.
type placement struct {
	loc      *model.Location
	table    *model.Table
	date     string
	from, to slot.Slot
	guests   int
}

// validatePlacement runs the common booking checks in their fixed order and
// stops at the first failure: location exists, positive guest count, date not
// in the past, boundary times, not fully elapsed today, ordered range, table
// at the location, sufficient capacity.
func (e *Engine) validatePlacement(ctx context.Context, locationID, tableID, date, timeFrom, timeTo string, guests int) (*placement, error) {
	loc, err := e.locations.Get(ctx, locationID)
	if err != nil {
		return nil, internal(err)
	}
	if loc == nil {
		return nil, errf(KindNotFound, "location %s not found", locationID)
	}
	if guests <= 0 {
		return nil, errf(KindValidation, "guest count must be a positive number")
	}
	if _, perr := time.Parse(dateLayout, date); perr != nil {
		return nil, errf(KindValidation, "date must be in YYYY-MM-DD format")
	}
	if date < e.today() {
		return nil, errf(KindValidation, "cannot book a table for a past date")
	}
	from, ok := slot.ByStart(timeFrom)
	if !ok {
		return nil, errf(KindValidation, "start time %s is not a slot boundary", timeFrom)
	}
	to, ok := slot.ByEnd(timeTo)
	if !ok {
		return nil, errf(KindValidation, "end time %s is not a slot boundary", timeTo)
	}
	if date == e.today() && to.EndedBefore(e.minuteNow()) {
		return nil, errf(KindValidation, "requested time has already passed")
	}
	if from.Index > to.Index {
		return nil, errf(KindValidation, "start time must be before end time")
	}
	tab, err := e.tables.Get(ctx, tableID)
	if err != nil {
		return nil, internal(err)
	}
	if tab == nil || !loc.HasTable(tableID) {
		return nil, errf(KindNotFound, "table %s not found at this location", tableID)
	}
	if tab.Capacity < guests {
		return nil, errf(KindValidation, "table %s seats at most %d guests", tableID, tab.Capacity)
	}
	return &placement{loc: loc, table: tab, date: date, from: from, to: to, guests: guests}, nil
}

// records builds one Reserved reservation record per slot in the placement's
// range.  Waiter assignment happens separately.
func (p *placement) records(subject, bookedBy, bookedAt string) []*model.Reservation {
	var recs []*model.Reservation
	for i := p.from.Index; i <= p.to.Index; i++ {
		s, _ := slot.ByIndex(i)
		recs = append(recs, &model.Reservation{
			ID:         model.ReservationKey(p.date, p.loc.ID, p.table.ID, s.Name),
			UserID:     subject,
			Status:     model.StatusReserved,
			LocationID: p.loc.ID,
			TableID:    p.table.ID,
			Date:       p.date,
			TimeSlot:   s.Name,
			PreOrder:   []string{},
			Guests:     p.guests,
			BookedAt:   bookedAt,
			BookedBy:   bookedBy,
		})
	}
	return recs
}

// claimRange claims every record in order.  A mid-range conflict deletes the
// records claimed earlier in this call before failing, so a multi-slot
// booking is all-or-nothing from the store's point of view.
func (e *Engine) claimRange(ctx context.Context, recs []*model.Reservation) error {
	var claimed []string
	undo := func() {
		for _, id := range claimed {
			_ = e.reservations.Delete(ctx, id)
		}
	}
	for _, rec := range recs {
		ok, err := e.reservations.Claim(ctx, rec)
		if err != nil {
			undo()
			return internal(err)
		}
		if !ok {
			undo()
			s, _ := slot.ByName(rec.TimeSlot)
			return errf(KindConflict, "table %s is already reserved for %s on %s", rec.TableID, s.Window(), rec.Date)
		}
		claimed = append(claimed, rec.ID)
	}
	return nil
}

// displayStatus derives the reservation's current status.  Only Reserved and
// Cancelled are ever stored; a reserved record whose slot window contains the
// current local time reads as InProgress.
func (e *Engine) displayStatus(res *model.Reservation) string {
	if res.Cancelled() {
		return model.StatusCancelled
	}
	if res.Date == e.today() {
		if s, ok := slot.ByName(res.TimeSlot); ok && s.Contains(e.minuteNow()) {
			return model.StatusInProgress
		}
	}
	return model.StatusReserved
}

// response renders the per-slot view of a reservation.
func (e *Engine) response(res *model.Reservation, address, userInfo string) ReservationResponse {
	window := res.TimeSlot
	if s, ok := slot.ByName(res.TimeSlot); ok {
		window = s.Window()
	}
	pre := res.PreOrder
	if pre == nil {
		pre = []string{}
	}
	return ReservationResponse{
		ID:              res.ID,
		Status:          e.displayStatus(res),
		LocationAddress: address,
		Date:            res.Date,
		TimeSlot:        window,
		PreOrder:        pre,
		Guests:          res.Guests,
		FeedbackID:      res.FeedbackID,
		UserInfo:        userInfo,
	}
}

// publish emits a lifecycle event when a sink is attached.
func (e *Engine) publish(eventType string, res *model.Reservation, actor string) {
	if e.events == nil {
		return
	}
	e.events.Publish(Event{
		Type:          eventType,
		ReservationID: res.ID,
		Actor:         actor,
		Date:          res.Date,
		TimeSlot:      res.TimeSlot,
	})
}

// CreateByCustomer books one table for an inclusive slot range on behalf of
// the authenticated customer.  Each allocated slot gets the least-busy
// eligible waiter for that location/date/slot, ties broken by position in
// the location's waiter list.  Waiter workload records are only written once
// the whole range has been claimed.
func (e *Engine) CreateByCustomer(ctx context.Context, req CreateRequest, customerEmail string) ([]ReservationResponse, error) {
	p, err := e.validatePlacement(ctx, req.LocationID, req.TableID, req.Date, req.TimeFrom, req.TimeTo, req.Guests)
	if err != nil {
		return nil, err
	}
	if len(p.loc.Waiters) == 0 {
		return nil, errf(KindConflict, "no waiters are assigned to this location")
	}

	recs := p.records(customerEmail, model.BookedByCustomer, e.now().Format(bookedLayout))

	// Pick waiters before claiming so the records carry their assignment;
	// the workload lists are flushed only after every claim succeeds.
	asg := e.newAssigner(p.loc)
	for _, rec := range recs {
		w, aerr := asg.pick(ctx, rec.Date, rec.TimeSlot)
		if aerr != nil {
			return nil, aerr
		}
		rec.WaiterID = w.Email
		w.ReservationIDs = append(w.ReservationIDs, rec.ID)
	}

	if err := e.claimRange(ctx, recs); err != nil {
		return nil, err
	}
	if err := asg.flush(ctx); err != nil {
		return nil, err
	}

	out := make([]ReservationResponse, 0, len(recs))
	for _, rec := range recs {
		e.publish("reservation.created", rec, customerEmail)
		out = append(out, e.response(rec, p.loc.Address, ""))
	}
	return out, nil
}
