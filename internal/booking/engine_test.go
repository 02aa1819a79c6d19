package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

// In-memory fakes for the store interfaces.  Claim mirrors the Redis script:
// insert unless the key holds a non-cancelled record.

type memReservations struct{ m map[string]model.Reservation }

func (s *memReservations) Get(_ context.Context, id string) (*model.Reservation, error) {
	r, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memReservations) Claim(_ context.Context, res *model.Reservation) (bool, error) {
	if cur, ok := s.m[res.ID]; ok && !cur.Cancelled() {
		return false, nil
	}
	s.m[res.ID] = *res
	return true, nil
}

func (s *memReservations) Put(_ context.Context, res *model.Reservation) error {
	s.m[res.ID] = *res
	return nil
}

func (s *memReservations) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

func (s *memReservations) All(_ context.Context) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0, len(s.m))
	for _, r := range s.m {
		out = append(out, r)
	}
	return out, nil
}

type memLocations struct{ m map[string]model.Location }

func (s *memLocations) Get(_ context.Context, id string) (*model.Location, error) {
	l, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

type memTables struct{ m map[string]model.Table }

func (s *memTables) Get(_ context.Context, id string) (*model.Table, error) {
	t, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

type memWaiters struct{ m map[string]model.Waiter }

func (s *memWaiters) Get(_ context.Context, email string) (*model.Waiter, error) {
	w, ok := s.m[email]
	if !ok {
		return nil, nil
	}
	cp := w
	cp.ReservationIDs = append([]string(nil), w.ReservationIDs...)
	return &cp, nil
}

func (s *memWaiters) Put(_ context.Context, w *model.Waiter) error {
	s.m[w.Email] = *w
	return nil
}

type memUsers struct{ names map[string]string } // customer email -> display name

func (s *memUsers) IsCustomer(_ context.Context, email string) (bool, error) {
	_, ok := s.names[email]
	return ok, nil
}

func (s *memUsers) Name(_ context.Context, email string) (string, error) {
	return s.names[email], nil
}

type memEvents struct{ published []Event }

func (s *memEvents) Publish(ev Event) { s.published = append(s.published, ev) }

// fixture wires an engine over the fakes with one two-table location and two
// waiters.  The clock starts at 09:00 on 2025-06-01 and tests move it with
// setClock.
type fixture struct {
	res *memReservations
	wtr *memWaiters
	ev  *memEvents
	eng *Engine
	now time.Time
}

func newFixture() *fixture {
	f := &fixture{
		res: &memReservations{m: map[string]model.Reservation{}},
		wtr: &memWaiters{m: map[string]model.Waiter{}},
		ev:  &memEvents{},
		now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	locs := &memLocations{m: map[string]model.Location{
		"L1": {ID: "L1", Address: "12 MG Road", Tables: []string{"T1", "T2"}, Waiters: []string{"w1@x.com", "w2@x.com"}},
		"L2": {ID: "L2", Address: "5 Park Street", Tables: []string{"T9"}},
	}}
	tabs := &memTables{m: map[string]model.Table{
		"T1": {ID: "T1", Capacity: 4},
		"T2": {ID: "T2", Capacity: 2},
		"T9": {ID: "T9", Capacity: 6},
	}}
	users := &memUsers{names: map[string]string{"carol@x.com": "Carol Jones"}}
	f.eng = NewEngine(f.res, locs, tabs, f.wtr, users, f.ev, func() time.Time { return f.now })
	return f
}

func (f *fixture) setClock(hour, min int) {
	f.now = time.Date(2025, 6, 1, hour, min, 0, 0, time.UTC)
}

func slot1Request() CreateRequest {
	return CreateRequest{
		LocationID: "L1", TableID: "T1", Date: "2025-06-01",
		TimeFrom: "10:30", TimeTo: "12:00", Guests: 3,
	}
}

func TestCustomerBookingSingleSlot(t *testing.T) {
	f := newFixture()
	out, err := f.eng.CreateByCustomer(context.Background(), slot1Request(), "alice@x.com")
	if err != nil {
		t.Fatalf("CreateByCustomer: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d responses, want 1", len(out))
	}
	r := out[0]
	if r.ID != "2025-06-01|L1|T1|slot1" {
		t.Errorf("id = %q", r.ID)
	}
	if r.Status != model.StatusReserved {
		t.Errorf("status = %q, want Reserved", r.Status)
	}
	if r.TimeSlot != "10:30 - 12:00" {
		t.Errorf("timeSlot = %q", r.TimeSlot)
	}
	if r.LocationAddress != "12 MG Road" {
		t.Errorf("address = %q", r.LocationAddress)
	}

	stored := f.res.m[r.ID]
	if stored.UserID != "alice@x.com" || stored.BookedBy != model.BookedByCustomer {
		t.Errorf("stored record = %+v", stored)
	}
	if stored.WaiterID != "w1@x.com" {
		t.Errorf("assigned waiter = %q, want first-listed w1@x.com", stored.WaiterID)
	}
	if w := f.wtr.m["w1@x.com"]; !(&w).Owns(r.ID) {
		t.Errorf("w1 workload list missing %s: %v", r.ID, w.ReservationIDs)
	}
	if len(f.ev.published) != 1 || f.ev.published[0].Type != "reservation.created" {
		t.Errorf("events = %+v", f.ev.published)
	}
}

func TestCustomerBookingExcludesSlotFromAvailability(t *testing.T) {
	f := newFixture()
	if _, err := f.eng.CreateByCustomer(context.Background(), slot1Request(), "alice@x.com"); err != nil {
		t.Fatalf("book: %v", err)
	}
	avail, err := f.eng.AvailableTables(context.Background(), "L1", "2025-06-01", "", 2)
	if err != nil {
		t.Fatalf("AvailableTables: %v", err)
	}
	for _, ta := range avail {
		if ta.TableID != "T1" {
			continue
		}
		for _, s := range ta.AvailableSlots {
			if s.Name == "slot1" {
				t.Fatalf("slot1 still offered on T1 after booking")
			}
		}
	}
}

func TestCustomerBookingConflict(t *testing.T) {
	f := newFixture()
	if _, err := f.eng.CreateByCustomer(context.Background(), slot1Request(), "alice@x.com"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := f.eng.CreateByCustomer(context.Background(), slot1Request(), "bob@x.com")
	if !IsKind(err, KindConflict) {
		t.Fatalf("second booking err = %v, want conflict", err)
	}
	if got := f.res.m["2025-06-01|L1|T1|slot1"].UserID; got != "alice@x.com" {
		t.Errorf("record owner after failed rebook = %q", got)
	}
}

func TestRebookAfterCancellation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	out, err := f.eng.CreateByCustomer(ctx, slot1Request(), "alice@x.com")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	// 09:00 is more than 30 minutes before the 10:30 start.
	if err := f.eng.CancelByCustomer(ctx, out[0].ID, "alice@x.com"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.eng.CreateByCustomer(ctx, slot1Request(), "bob@x.com"); err != nil {
		t.Fatalf("rebook over cancelled record: %v", err)
	}
	if got := f.res.m[out[0].ID].UserID; got != "bob@x.com" {
		t.Errorf("record owner = %q, want bob@x.com", got)
	}
}

func TestMultiSlotConflictCompensates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	// slot2 is taken, so a slot1..slot2 range must fail whole.
	blocker := CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-06-01", TimeFrom: "12:15", TimeTo: "13:45", Guests: 2}
	if _, err := f.eng.CreateByCustomer(ctx, blocker, "bob@x.com"); err != nil {
		t.Fatalf("blocker: %v", err)
	}
	wide := slot1Request()
	wide.TimeTo = "13:45"
	_, err := f.eng.CreateByCustomer(ctx, wide, "alice@x.com")
	if !IsKind(err, KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if _, ok := f.res.m["2025-06-01|L1|T1|slot1"]; ok {
		t.Errorf("slot1 record left behind after mid-range conflict")
	}
	for email, w := range f.wtr.m {
		for _, id := range w.ReservationIDs {
			if strings.HasSuffix(id, "|slot1") {
				t.Errorf("waiter %s still lists compensated reservation %s", email, id)
			}
		}
	}
}

func TestWaiterAssignmentBalances(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := slot1Request()
	if _, err := f.eng.CreateByCustomer(ctx, first, "alice@x.com"); err != nil {
		t.Fatalf("first: %v", err)
	}
	// Same date and slot on the other table: w1 already carries one, so the
	// tie-break no longer applies and w2 must get it.
	second := first
	second.TableID = "T2"
	second.Guests = 2
	if _, err := f.eng.CreateByCustomer(ctx, second, "bob@x.com"); err != nil {
		t.Fatalf("second: %v", err)
	}
	if got := f.res.m["2025-06-01|L1|T2|slot1"].WaiterID; got != "w2@x.com" {
		t.Errorf("second assignment = %q, want w2@x.com", got)
	}
}

func TestBookingWithoutWaitersConflicts(t *testing.T) {
	f := newFixture()
	req := CreateRequest{LocationID: "L2", TableID: "T9", Date: "2025-06-02", TimeFrom: "10:30", TimeTo: "12:00", Guests: 2}
	_, err := f.eng.CreateByCustomer(context.Background(), req, "alice@x.com")
	if !IsKind(err, KindConflict) {
		t.Fatalf("err = %v, want conflict for waiterless location", err)
	}
}

func TestCustomerBookingValidation(t *testing.T) {
	f := newFixture()
	f.setClock(20, 0) // evening, so same-day morning slots have elapsed

	cases := []struct {
		name string
		req  CreateRequest
		kind Kind
	}{
		{"unknown location", CreateRequest{LocationID: "LX", TableID: "T1", Date: "2025-06-02", TimeFrom: "10:30", TimeTo: "12:00", Guests: 2}, KindNotFound},
		{"zero guests", CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-06-02", TimeFrom: "10:30", TimeTo: "12:00", Guests: 0}, KindValidation},
		{"bad date format", CreateRequest{LocationID: "L1", TableID: "T1", Date: "01-06-2025", TimeFrom: "10:30", TimeTo: "12:00", Guests: 2}, KindValidation},
		{"past date", CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-05-30", TimeFrom: "10:30", TimeTo: "12:00", Guests: 2}, KindValidation},
		{"non-boundary start", CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-06-02", TimeFrom: "10:45", TimeTo: "12:00", Guests: 2}, KindValidation},
		{"non-boundary end", CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-06-02", TimeFrom: "10:30", TimeTo: "12:30", Guests: 2}, KindValidation},
		{"elapsed today", CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-06-01", TimeFrom: "10:30", TimeTo: "12:00", Guests: 2}, KindValidation},
		{"start after end", CreateRequest{LocationID: "L1", TableID: "T1", Date: "2025-06-02", TimeFrom: "14:00", TimeTo: "12:00", Guests: 2}, KindValidation},
		{"table at other location", CreateRequest{LocationID: "L1", TableID: "T9", Date: "2025-06-02", TimeFrom: "10:30", TimeTo: "12:00", Guests: 2}, KindNotFound},
		{"over capacity", CreateRequest{LocationID: "L1", TableID: "T2", Date: "2025-06-02", TimeFrom: "10:30", TimeTo: "12:00", Guests: 3}, KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.eng.CreateByCustomer(context.Background(), tc.req, "alice@x.com")
			if !IsKind(err, tc.kind) {
				t.Fatalf("err = %v, want kind %d", err, tc.kind)
			}
		})
	}
	if len(f.res.m) != 0 {
		t.Errorf("validation failures wrote %d records", len(f.res.m))
	}
}

func TestMultiSlotBookingCreatesOneRecordPerSlot(t *testing.T) {
	f := newFixture()
	req := slot1Request()
	req.TimeTo = "15:30" // slot1..slot3
	out, err := f.eng.CreateByCustomer(context.Background(), req, "alice@x.com")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d responses, want 3", len(out))
	}
	for _, name := range []string{"slot1", "slot2", "slot3"} {
		if _, ok := f.res.m["2025-06-01|L1|T1|"+name]; !ok {
			t.Errorf("missing record for %s", name)
		}
	}
}

func TestDisplayStatusInProgress(t *testing.T) {
	f := newFixture()
	out, err := f.eng.CreateByCustomer(context.Background(), slot1Request(), "alice@x.com")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	f.setClock(11, 0) // inside the 10:30-12:00 window
	hist, err := f.eng.History(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].ID != out[0].ID {
		t.Fatalf("history = %+v", hist)
	}
	if hist[0].Status != model.StatusInProgress {
		t.Errorf("derived status = %q, want InProgress", hist[0].Status)
	}
	if got := f.res.m[out[0].ID].Status; got != model.StatusReserved {
		t.Errorf("stored status = %q, must stay Reserved", got)
	}
}
