package model

import "strings"

// Reservation statuses.  Only Reserved and Cancelled are ever persisted;
// InProgress is derived at query time from the current clock and the slot
// window so that stored records can never go stale.
const (
	StatusReserved   = "Reserved"
	StatusInProgress = "InProgress"
	StatusCancelled  = "Cancelled"
)

// Originator values for Reservation.BookedBy.
const (
	BookedByCustomer = "Customer"
	BookedByWaiter   = "Waiter"
)

// SubjectVisitor is the subject id used when a waiter books a table for a
// walk-in guest without an account.
const SubjectVisitor = "Visitor"

// Reservation is one table-slot-date booking.  The ID is the deterministic
// composite key produced by ReservationKey, so at most one record can exist
// per bookable unit.
//
// Fields:
//
//	ID         – composite key date|locationId|tableId|slot.
//	UserID     – customer email, or "Visitor" for waiter walk-in bookings.
//	Status     – Reserved or Cancelled (see constants above).
//	LocationID – location the table belongs to.
//	TableID    – booked table.
//	Date       – booking date, YYYY-MM-DD.
//	TimeSlot   – slot name (slot1..slot7).
//	PreOrder   – dish ids ordered with the booking; always empty at creation.
//	Guests     – party size, > 0.
//	FeedbackID – feedback record id, empty until feedback exists.
//	BookedAt   – local wall-clock time the booking was made, HH:mm:ss.
//	WaiterID   – email of the waiter serving this reservation.
//	BookedBy   – originator tag, Customer or Waiter.
type Reservation struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	Status     string   `json:"status"`
	LocationID string   `json:"locationId"`
	TableID    string   `json:"tableId"`
	Date       string   `json:"date"`
	TimeSlot   string   `json:"timeSlot"`
	PreOrder   []string `json:"preOrder"`
	Guests     int      `json:"noOfGuests"`
	FeedbackID string   `json:"feedbackId"`
	BookedAt   string   `json:"bookedAt"`
	WaiterID   string   `json:"waiterId"`
	BookedBy   string   `json:"bookedBy"`
}

// ReservationKey builds the composite reservation id for a table-slot-date.
func ReservationKey(date, locationID, tableID, slot string) string {
	return strings.Join([]string{date, locationID, tableID, slot}, "|")
}

// Cancelled reports whether the stored status is Cancelled.
func (r *Reservation) Cancelled() bool {
	return strings.EqualFold(r.Status, StatusCancelled)
}
