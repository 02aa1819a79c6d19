package model

// Table is a physical table with a fixed seating capacity.  Date and Slots
// are legacy seed fields kept for compatibility with existing table records;
// authoritative availability is always recomputed from the reservation store,
// never read from Slots.
type Table struct {
	ID       string          `json:"id"`
	Capacity int             `json:"capacity"`
	Date     string          `json:"date"`
	Slots    map[string]bool `json:"slots"`
}
