package booking

import (
	"context"
	"testing"
)

func slotNames(ta TableAvailability) []string {
	out := make([]string, 0, len(ta.AvailableSlots))
	for _, s := range ta.AvailableSlots {
		out = append(out, s.Name)
	}
	return out
}

func findTable(t *testing.T, avail []TableAvailability, id string) TableAvailability {
	t.Helper()
	for _, ta := range avail {
		if ta.TableID == id {
			return ta
		}
	}
	t.Fatalf("table %s missing from availability: %+v", id, avail)
	return TableAvailability{}
}

func TestAvailabilityExcludesBookedAndElapsed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.book(t, slot1Request(), "alice@x.com")

	// 13:50: slot1 and slot2 have fully elapsed (slot2 ends 13:45), slot3
	// onwards remain.
	f.setClock(13, 50)
	avail, err := f.eng.AvailableTables(ctx, "L1", "2025-06-01", "", 2)
	if err != nil {
		t.Fatalf("AvailableTables: %v", err)
	}
	t1 := findTable(t, avail, "T1")
	want := []string{"slot3", "slot4", "slot5", "slot6", "slot7"}
	got := slotNames(t1)
	if len(got) != len(want) {
		t.Fatalf("T1 slots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("T1 slots = %v, want %v", got, want)
		}
	}
}

func TestAvailabilityIncludesCancelledSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.book(t, slot1Request(), "alice@x.com")
	if err := f.eng.CancelByCustomer(ctx, id, "alice@x.com"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	avail, err := f.eng.AvailableTables(ctx, "L1", "2025-06-01", "", 2)
	if err != nil {
		t.Fatalf("AvailableTables: %v", err)
	}
	for _, s := range findTable(t, avail, "T1").AvailableSlots {
		if s.Name == "slot1" {
			return
		}
	}
	t.Fatalf("cancelled slot1 not offered again")
}

func TestAvailabilityFiltersCapacity(t *testing.T) {
	f := newFixture()
	avail, err := f.eng.AvailableTables(context.Background(), "L1", "2025-06-02", "", 3)
	if err != nil {
		t.Fatalf("AvailableTables: %v", err)
	}
	for _, ta := range avail {
		if ta.TableID == "T2" {
			t.Fatalf("capacity-2 table offered to a party of 3")
		}
	}
	findTable(t, avail, "T1")
}

func TestAvailabilityTimeFilter(t *testing.T) {
	f := newFixture()
	avail, err := f.eng.AvailableTables(context.Background(), "L1", "2025-06-02", "12:15", 2)
	if err != nil {
		t.Fatalf("AvailableTables: %v", err)
	}
	t1 := findTable(t, avail, "T1")
	if len(t1.AvailableSlots) != 1 || t1.AvailableSlots[0].Name != "slot2" {
		t.Fatalf("filtered slots = %v", slotNames(t1))
	}
	if t1.AvailableSlots[0].Start != "12:15" || t1.AvailableSlots[0].End != "13:45" {
		t.Fatalf("slot window = %+v", t1.AvailableSlots[0])
	}
}

func TestAvailabilityValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.eng.AvailableTables(ctx, "LX", "2025-06-02", "", 2); !IsKind(err, KindNotFound) {
		t.Errorf("unknown location: err = %v", err)
	}
	if _, err := f.eng.AvailableTables(ctx, "L1", "2025-06-02", "", 0); !IsKind(err, KindValidation) {
		t.Errorf("zero guests: err = %v", err)
	}
	if _, err := f.eng.AvailableTables(ctx, "L1", "2025-05-20", "", 2); !IsKind(err, KindValidation) {
		t.Errorf("past date: err = %v", err)
	}
	if _, err := f.eng.AvailableTables(ctx, "L1", "bad-date", "", 2); !IsKind(err, KindValidation) {
		t.Errorf("bad date: err = %v", err)
	}
	if _, err := f.eng.AvailableTables(ctx, "L1", "2025-06-02", "10:45", 2); !IsKind(err, KindValidation) {
		t.Errorf("non-boundary time filter: err = %v", err)
	}
}
