package booking

import (
	"context"

	"github.com/tablebooker/restaurant-reservation/internal/model"
)

// CreateByWaiter books a table on a guest's behalf.  The acting waiter must
// be eligible for the location and always owns the resulting reservations;
// no load balancing happens on this path.  ClientType selects the subject:
// a walk-in Visitor, or an Existing customer who must hold a CUSTOMER-role
// account.
func (e *Engine) CreateByWaiter(ctx context.Context, req WaiterCreateRequest, waiterEmail string) ([]ReservationResponse, error) {
	p, err := e.validatePlacement(ctx, req.LocationID, req.TableID, req.Date, req.TimeFrom, req.TimeTo, req.Guests)
	if err != nil {
		return nil, err
	}
	if !p.loc.HasWaiter(waiterEmail) {
		return nil, errf(KindForbidden, "you do not serve location %s", req.LocationID)
	}

	var subject, userInfo string
	switch req.ClientType {
	case ClientVisitor:
		subject, userInfo = model.SubjectVisitor, model.SubjectVisitor
	case ClientExisting:
		if req.CustomerEmail == "" {
			return nil, errf(KindValidation, "customerEmail is required for Existing clients")
		}
		ok, derr := e.users.IsCustomer(ctx, req.CustomerEmail)
		if derr != nil {
			return nil, internal(derr)
		}
		if !ok {
			return nil, errf(KindNotFound, "no customer account for %s", req.CustomerEmail)
		}
		subject = req.CustomerEmail
		name, derr := e.users.Name(ctx, req.CustomerEmail)
		if derr != nil {
			return nil, internal(derr)
		}
		userInfo = "Customer " + name
	default:
		return nil, errf(KindValidation, "clientType must be Visitor or Existing")
	}

	recs := p.records(subject, model.BookedByWaiter, e.now().Format(bookedLayout))
	for _, rec := range recs {
		rec.WaiterID = waiterEmail
	}
	if err := e.claimRange(ctx, recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if err := e.attach(ctx, waiterEmail, p.loc.ID, rec.ID); err != nil {
			return nil, err
		}
	}

	out := make([]ReservationResponse, 0, len(recs))
	for _, rec := range recs {
		e.publish("reservation.created", rec, waiterEmail)
		out = append(out, e.response(rec, p.loc.Address, userInfo))
	}
	return out, nil
}
