package booking

import (
	"context"
	"testing"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

func waiterRequest(clientType, customerEmail string) WaiterCreateRequest {
	return WaiterCreateRequest{
		CreateRequest: CreateRequest{
			LocationID: "L1", TableID: "T1", Date: "2025-06-02",
			TimeFrom: "12:15", TimeTo: "13:45", Guests: 2,
		},
		ClientType:    clientType,
		CustomerEmail: customerEmail,
	}
}

func TestWaiterBookingForVisitor(t *testing.T) {
	f := newFixture()
	out, err := f.eng.CreateByWaiter(context.Background(), waiterRequest(ClientVisitor, ""), "w2@x.com")
	if err != nil {
		t.Fatalf("CreateByWaiter: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d responses, want 1", len(out))
	}
	if out[0].UserInfo != "Visitor" {
		t.Errorf("userInfo = %q", out[0].UserInfo)
	}
	stored := f.res.m[out[0].ID]
	if stored.UserID != model.SubjectVisitor {
		t.Errorf("subject = %q, want Visitor", stored.UserID)
	}
	if stored.BookedBy != model.BookedByWaiter {
		t.Errorf("bookedBy = %q", stored.BookedBy)
	}
	// The booking waiter owns it regardless of load balance.
	if stored.WaiterID != "w2@x.com" {
		t.Errorf("waiter = %q, want the acting waiter", stored.WaiterID)
	}
	if w := f.wtr.m["w2@x.com"]; !(&w).Owns(out[0].ID) {
		t.Errorf("acting waiter's list missing the booking: %v", w.ReservationIDs)
	}
}

func TestWaiterBookingForExistingCustomer(t *testing.T) {
	f := newFixture()
	out, err := f.eng.CreateByWaiter(context.Background(), waiterRequest(ClientExisting, "carol@x.com"), "w1@x.com")
	if err != nil {
		t.Fatalf("CreateByWaiter: %v", err)
	}
	if got := f.res.m[out[0].ID].UserID; got != "carol@x.com" {
		t.Errorf("subject = %q", got)
	}
	if out[0].UserInfo != "Customer Carol Jones" {
		t.Errorf("userInfo = %q", out[0].UserInfo)
	}
}

func TestWaiterBookingChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.eng.CreateByWaiter(ctx, waiterRequest(ClientVisitor, ""), "stranger@x.com"); !IsKind(err, KindForbidden) {
		t.Errorf("non-eligible waiter: err = %v, want forbidden", err)
	}
	if _, err := f.eng.CreateByWaiter(ctx, waiterRequest(ClientExisting, "nobody@x.com"), "w1@x.com"); !IsKind(err, KindNotFound) {
		t.Errorf("unknown customer: err = %v, want not found", err)
	}
	if _, err := f.eng.CreateByWaiter(ctx, waiterRequest(ClientExisting, ""), "w1@x.com"); !IsKind(err, KindValidation) {
		t.Errorf("missing customerEmail: err = %v, want validation", err)
	}
	if _, err := f.eng.CreateByWaiter(ctx, waiterRequest("Walkup", ""), "w1@x.com"); !IsKind(err, KindValidation) {
		t.Errorf("bad clientType: err = %v, want validation", err)
	}
}
