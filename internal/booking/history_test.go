package booking

import (
	"context"
	"testing"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

func TestHistoryListsOwnReservationsOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.book(t, slot1Request(), "alice@x.com")
	later := slot1Request()
	later.Date = "2025-06-03"
	later.TimeFrom, later.TimeTo = "17:30", "19:00"
	second := f.book(t, later, "alice@x.com")
	other := slot1Request()
	other.TableID = "T2"
	other.Guests = 2
	f.book(t, other, "bob@x.com")

	if err := f.eng.CancelByCustomer(ctx, first, "alice@x.com"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	hist, err := f.eng.History(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(hist), hist)
	}
	// Sorted by date: the cancelled same-day booking first.
	if hist[0].ID != first || hist[0].Status != model.StatusCancelled {
		t.Errorf("first entry = %+v", hist[0])
	}
	if hist[1].ID != second || hist[1].Status != model.StatusReserved {
		t.Errorf("second entry = %+v", hist[1])
	}
	if hist[0].LocationAddress != "12 MG Road" {
		t.Errorf("address = %q", hist[0].LocationAddress)
	}
}

func TestHistoryEmptyForUnknownCustomer(t *testing.T) {
	f := newFixture()
	hist, err := f.eng.History(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("got %d entries, want none", len(hist))
	}
}

func TestReservationsForWaiter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, slot1Request(), "alice@x.com") // w1, slot1
	evening := slot1Request()
	evening.TimeFrom, evening.TimeTo = "17:30", "19:00"
	eveningID := f.book(t, evening, "alice@x.com") // w1, slot5

	// 11:00: slot1 has started, only the evening booking is upcoming.
	f.setClock(11, 0)
	out, err := f.eng.ReservationsForWaiter(ctx, "w1@x.com", "2025-06-01", "", AnyTable)
	if err != nil {
		t.Fatalf("ReservationsForWaiter: %v", err)
	}
	if len(out) != 1 || out[0].ID != eveningID {
		t.Fatalf("out = %+v, want only %s", out, eveningID)
	}
	if out[0].UserInfo != "alice@x.com" {
		t.Errorf("userInfo = %q", out[0].UserInfo)
	}
}

func TestReservationsForWaiterFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, slot1Request(), "alice@x.com") // T1 slot1, w1
	other := slot1Request()
	other.TableID = "T2"
	other.Guests = 2
	f.book(t, other, "bob@x.com") // T2 slot1, w2

	out, err := f.eng.ReservationsForWaiter(ctx, "w1@x.com", "2025-06-01", "10:30", "T1")
	if err != nil {
		t.Fatalf("ReservationsForWaiter: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("out = %+v", out)
	}

	if _, err := f.eng.ReservationsForWaiter(ctx, "w1@x.com", "2025-06-01", "", "T2"); !IsKind(err, KindNoData) {
		t.Errorf("other table filter: err = %v, want no data", err)
	}
	if _, err := f.eng.ReservationsForWaiter(ctx, "w1@x.com", "2025-06-09", "", AnyTable); !IsKind(err, KindNoData) {
		t.Errorf("empty date: err = %v, want no data", err)
	}
	if _, err := f.eng.ReservationsForWaiter(ctx, "ghost@x.com", "2025-06-01", "", AnyTable); !IsKind(err, KindNotFound) {
		t.Errorf("unknown waiter: err = %v, want not found", err)
	}
}
