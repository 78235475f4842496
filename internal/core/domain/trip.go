package domain

// swagger:model domain.Trip
type Trip struct {
	ID          int     `json:"id"`
	CarID       int     `json:"-"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Description *string `json:"description"`
}

type TripInput struct {
	Start       int     `json:"start"`
	End         int     `json:"end"`
	Description *string `json:"description"`
}

func NewTrip(id, carID int, in TripInput) Trip {
	trip := Trip{
		ID:    id,
		CarID: carID,
		Start: in.Start,
		End:   in.End,
	}
	if in.Description != nil {
		d := *in.Description
		trip.Description = &d
	}
	return trip
}

// CheckBounds rejects a trip that ends before it starts.
func (in TripInput) CheckBounds() error {
	if in.Start > in.End {
		return ErrBadTrip
	}
	return nil
}

func (t Trip) Clone() Trip {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}
