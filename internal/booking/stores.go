package booking

import (
	"context"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

// ReservationStore is the engine's view of reservation persistence.  Get
// returns (nil, nil) when the key holds no record.  Claim atomically inserts
// the record only when the key is free or holds a cancelled reservation,
// reporting whether the write happened.
type ReservationStore interface {
	Get(ctx context.Context, id string) (*model.Reservation, error)
	Claim(ctx context.Context, res *model.Reservation) (bool, error)
	Put(ctx context.Context, res *model.Reservation) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]model.Reservation, error)
}

// LocationStore reads location records; (nil, nil) when unknown.
type LocationStore interface {
	Get(ctx context.Context, id string) (*model.Location, error)
}

// TableStore reads table records; (nil, nil) when unknown.
type TableStore interface {
	Get(ctx context.Context, id string) (*model.Table, error)
}

// WaiterStore reads and writes per-waiter workload records; Get returns
// (nil, nil) when unknown.
type WaiterStore interface {
	Get(ctx context.Context, email string) (*model.Waiter, error)
	Put(ctx context.Context, w *model.Waiter) error
}

// UserDirectory is the engine's narrow view of the account database, used
// only when a waiter books on behalf of an existing customer.
type UserDirectory interface {
	IsCustomer(ctx context.Context, email string) (bool, error)
	Name(ctx context.Context, email string) (string, error)
}

// Event describes a reservation state change for the message queue.
type Event struct {
	Type          string `json:"type"` // reservation.created / reservation.cancelled / reservation.postponed
	ReservationID string `json:"reservationId"`
	Actor         string `json:"actor"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
}

// EventSink receives lifecycle events.  Publishing is fire-and-forget; the
// engine never fails an operation because an event could not be delivered.
type EventSink interface {
	Publish(ev Event)
}
