// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published whenever a reservation is created, updated,
// postponed or cancelled.  It carries enough for downstream consumers to
// log or notify without querying the primary stores.
type ReservationEvent struct {
	Type          string `json:"type"` // reservation.created / .updated / .postponed / .cancelled
	ReservationID string `json:"reservation_id"`
	Actor         string `json:"actor"`
	Date          string `json:"date"`
	TimeSlot      string `json:"time_slot"`
	OccurredAt    string `json:"occurred_at"`
}
