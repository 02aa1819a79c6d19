package model

// Location is a restaurant site.  Tables lists the ids of the tables that
// belong to the site and Waiters the emails of the waitstaff eligible to
// serve it.  Rating and occupancy are display-only aggregates; the booking
// engine never consults them.
type Location struct {
	ID               string   `json:"id"`
	Address          string   `json:"address"`
	Description      string   `json:"description"`
	ImageURL         string   `json:"imageUrl"`
	TotalCapacity    int      `json:"totalCapacity"`
	AverageOccupancy float64  `json:"averageOccupancy"`
	Rating           float64  `json:"rating"`
	Tables           []string `json:"tables"`
	Waiters          []string `json:"listOfWaiters"`
}

// HasTable reports whether the table id belongs to this location.
func (l *Location) HasTable(tableID string) bool {
	for _, t := range l.Tables {
		if t == tableID {
			return true
		}
	}
	return false
}

// HasWaiter reports whether the waiter email is eligible to serve this
// location.
func (l *Location) HasWaiter(email string) bool {
	for _, w := range l.Waiters {
		if w == email {
			return true
		}
	}
	return false
}
