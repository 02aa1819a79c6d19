package booking

import (
	"context"
	"sort"
	"time"

	"github.com/tablebooker/restaurant-reservation/internal/slot"
)

// address resolves a location id to its display address, memoizing lookups
// across one query.  Unknown locations resolve to an empty address rather
// than failing the whole listing.
func (e *Engine) address(ctx context.Context, cache map[string]string, locationID string) (string, error) {
	if addr, ok := cache[locationID]; ok {
		return addr, nil
	}
	loc, err := e.locations.Get(ctx, locationID)
	if err != nil {
		return "", internal(err)
	}
	addr := ""
	if loc != nil {
		addr = loc.Address
	}
	cache[locationID] = addr
	return addr, nil
}

// History returns every reservation the customer has made, cancelled ones
// included, with their derived status and location address.  The listing is
// sorted by date then slot so the newest plans come last.
func (e *Engine) History(ctx context.Context, customerEmail string) ([]ReservationResponse, error) {
	all, err := e.reservations.All(ctx)
	if err != nil {
		return nil, internal(err)
	}
	addrs := map[string]string{}
	var out []ReservationResponse
	for i := range all {
		res := &all[i]
		if res.UserID != customerEmail {
			continue
		}
		addr, aerr := e.address(ctx, addrs, res.LocationID)
		if aerr != nil {
			return nil, aerr
		}
		out = append(out, e.response(res, addr, ""))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out, nil
}

// ReservationsForWaiter lists the waiter's upcoming reserved bookings for a
// date, optionally narrowed to one table and one slot start time.  Slots
// already started today are excluded.  An empty result is reported as
// KindNoData so the HTTP layer can answer 204.
func (e *Engine) ReservationsForWaiter(ctx context.Context, waiterEmail, date, timeFilter, table string) ([]ReservationResponse, error) {
	w, err := e.waiters.Get(ctx, waiterEmail)
	if err != nil {
		return nil, internal(err)
	}
	if w == nil {
		return nil, errf(KindNotFound, "no waiter record for %s", waiterEmail)
	}
	if _, perr := time.Parse(dateLayout, date); perr != nil {
		return nil, errf(KindValidation, "date must be in YYYY-MM-DD format")
	}
	var only string
	if timeFilter != "" {
		s, ok := slot.ByStart(timeFilter)
		if !ok {
			return nil, errf(KindValidation, "time %s is not a slot start", timeFilter)
		}
		only = s.Name
	}

	today := date == e.today()
	minute := e.minuteNow()
	addrs := map[string]string{}

	var out []ReservationResponse
	for _, id := range w.ReservationIDs {
		res, rerr := e.reservations.Get(ctx, id)
		if rerr != nil {
			return nil, internal(rerr)
		}
		if res == nil || res.Cancelled() || res.Date != date {
			continue
		}
		if only != "" && res.TimeSlot != only {
			continue
		}
		if table != "" && table != AnyTable && res.TableID != table {
			continue
		}
		s, ok := slot.ByName(res.TimeSlot)
		if !ok {
			continue
		}
		if today && s.StartMin <= minute {
			continue
		}
		addr, aerr := e.address(ctx, addrs, res.LocationID)
		if aerr != nil {
			return nil, aerr
		}
		name, nerr := e.users.Name(ctx, res.UserID)
		if nerr != nil {
			return nil, internal(nerr)
		}
		info := res.UserID
		if name != "" {
			info = "Customer " + name
		}
		out = append(out, e.response(res, addr, info))
	}
	if len(out) == 0 {
		return nil, errf(KindNoData, "no upcoming reservations")
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeSlot < out[j].TimeSlot })
	return out, nil
}
