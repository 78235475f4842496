package domain

// CarFilter narrows a car listing. Every set field must match exactly;
// empty strings and a nil Doors impose no constraint.
type CarFilter struct {
	Size         string
	Fuel         string
	Doors        *int
	Transmission string
}

func (f CarFilter) IsEmpty() bool {
	return f.Size == "" && f.Fuel == "" && f.Doors == nil && f.Transmission == ""
}

func (f CarFilter) Matches(c *Car) bool {
	if f.Size != "" && c.Size != f.Size {
		return false
	}
	if f.Fuel != "" && c.Fuel != f.Fuel {
		return false
	}
	if f.Doors != nil && c.Doors != *f.Doors {
		return false
	}
	if f.Transmission != "" && c.Transmission != f.Transmission {
		return false
	}
	return true
}

// Apply returns the cars that match, keeping their order.
func (f CarFilter) Apply(cars []*Car) []*Car {
	out := make([]*Car, 0, len(cars))
	for _, c := range cars {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
