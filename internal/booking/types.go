package booking

// Client types accepted on the waiter booking path.
const (
	ClientVisitor  = "Visitor"
	ClientExisting = "Existing"
)

// AnyTable is the wildcard table filter on waiter reservation queries.
const AnyTable = "Any Table"

// CreateRequest is a customer booking: one table, one date, a boundary-to-
// boundary time range covering one or more contiguous slots.
type CreateRequest struct {
	LocationID string `json:"locationId"`
	TableID    string `json:"tableId"`
	Date       string `json:"date"` // YYYY-MM-DD
	TimeFrom   string `json:"timeFrom"`
	TimeTo     string `json:"timeTo"`
	Guests     int    `json:"guestsNumber"`
}

// WaiterCreateRequest is a booking made by waitstaff on a guest's behalf.
// ClientType selects the subject: a walk-in Visitor, or an Existing customer
// identified by email.
type WaiterCreateRequest struct {
	CreateRequest
	ClientType    string `json:"clientType"`
	CustomerEmail string `json:"customerEmail"`
}

// EditRequest is a customer's change to an existing reservation.  Location
// and date are immutable on this path; only table, times and guest count may
// move.
type EditRequest struct {
	TableID  string `json:"tableId"`
	TimeFrom string `json:"timeFrom"`
	TimeTo   string `json:"timeTo"`
	Guests   int    `json:"guestsNumber"`
}

// PostponeRequest moves a reservation to a new date/time/table on the waiter
// path.  The guest count is carried over from the original.
type PostponeRequest struct {
	TableID  string `json:"tableId"`
	Date     string `json:"date"`
	TimeFrom string `json:"timeFrom"`
	TimeTo   string `json:"timeTo"`
}

// ReservationResponse is the per-slot view returned by booking, lifecycle
// and query operations.  Status is the derived status at response time, so
// an in-window reservation reads InProgress even though only Reserved is
// ever stored.
type ReservationResponse struct {
	ID              string   `json:"id"`
	Status          string   `json:"status"`
	LocationAddress string   `json:"locationAddress"`
	Date            string   `json:"date"`
	TimeSlot        string   `json:"timeSlot"` // display window "HH:mm - HH:mm"
	PreOrder        []string `json:"preOrder"`
	Guests          int      `json:"guestsNumber"`
	FeedbackID      string   `json:"feedbackId"`
	UserInfo        string   `json:"userInfo,omitempty"` // "Visitor" or "Customer First Last"
}

// SlotView is one free slot in an availability result.
type SlotView struct {
	Name  string `json:"id"`
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// TableAvailability lists a table's free slots for the requested date.
type TableAvailability struct {
	TableID         string     `json:"tableNumber"`
	Capacity        int        `json:"capacity"`
	LocationID      string     `json:"locationId"`
	LocationAddress string     `json:"locationAddress"`
	AvailableSlots  []SlotView `json:"availableSlots"`
}
