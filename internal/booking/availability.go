package booking

import (
	"context"
	"time"

	"github.com/tablebooker/restaurant-reservation/internal/model"
	"github.com/tablebooker/restaurant-reservation/internal/slot"
)

// AvailableTables computes, for every table at the location that can seat
// the party, which of the day's slots are free on the given date.  A slot is
// free when no non-cancelled reservation holds its key and, for today's
// date, its window has not fully elapsed.  timeFilter narrows the result to
// the single slot starting at that time; empty means all slots.  Result
// order follows the location's table list; callers must not read more into
// it.
func (e *Engine) AvailableTables(ctx context.Context, locationID, date, timeFilter string, guests int) ([]TableAvailability, error) {
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
		return nil, errf(KindValidation, "cannot check availability for a past date")
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

	out := make([]TableAvailability, 0, len(loc.Tables))
	for _, tableID := range loc.Tables {
		tab, err := e.tables.Get(ctx, tableID)
		if err != nil {
			return nil, internal(err)
		}
		if tab == nil || tab.Capacity < guests {
			continue
		}
		free := make([]SlotView, 0, slot.Count)
		for _, s := range slot.All() {
			if only != "" && s.Name != only {
				continue
			}
			if today && s.EndedBefore(minute) {
				continue
			}
			res, err := e.reservations.Get(ctx, model.ReservationKey(date, locationID, tableID, s.Name))
			if err != nil {
				return nil, internal(err)
			}
			if res != nil && !res.Cancelled() {
				continue
			}
			free = append(free, SlotView{Name: s.Name, Start: s.Start, End: s.End})
		}
		out = append(out, TableAvailability{
			TableID:         tableID,
			Capacity:        tab.Capacity,
			LocationID:      locationID,
			LocationAddress: loc.Address,
			AvailableSlots:  free,
		})
	}
	return out, nil
}
