package model

// Waiter tracks a waiter's workload: the ordered list of reservation ids the
// waiter currently owns.  The list grows on booking/postponement and shrinks
// on cancellation, and doubles as the authorization source for waiter-side
// lifecycle operations.
type Waiter struct {
	Email          string   `json:"emailId"`
	LocationID     string   `json:"locationId"`
	ReservationIDs []string `json:"reservationIds"`
}

// Owns reports whether the reservation id is in the waiter's list.
func (w *Waiter) Owns(reservationID string) bool {
	for _, id := range w.ReservationIDs {
		if id == reservationID {
			return true
		}
	}
	return false
}

// RemoveReservation deletes the first occurrence of the reservation id from
// the waiter's list.  It is a no-op when the id is absent.
func (w *Waiter) RemoveReservation(reservationID string) {
	for i, id := range w.ReservationIDs {
		if id == reservationID {
			w.ReservationIDs = append(w.ReservationIDs[:i], w.ReservationIDs[i+1:]...)
			return
		}
	}
}
