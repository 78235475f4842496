package domain

const (
	DefaultSize         = "m"
	DefaultFuel         = "electric"
	DefaultDoors        = 5
	DefaultTransmission = "auto"
)

// swagger:model domain.Car
type Car struct {
	ID           int    `json:"id"`
	Size         string `json:"size"`
	Fuel         string `json:"fuel"`
	Doors        int    `json:"doors"`
	Transmission string `json:"transmission"`
	Trips        []Trip `json:"trips"`
}

// CarInput carries the descriptive fields of a car. Create and update
// both replace all four of them. Strings must be non-empty; doors is any
// integer.
type CarInput struct {
	Size         string `json:"size" validate:"required"`
	Fuel         string `json:"fuel" validate:"required"`
	Doors        int    `json:"doors"`
	Transmission string `json:"transmission" validate:"required"`
}

func DefaultCarInput() CarInput {
	return CarInput{
		Size:         DefaultSize,
		Fuel:         DefaultFuel,
		Doors:        DefaultDoors,
		Transmission: DefaultTransmission,
	}
}

func NewCar(id int, in CarInput) *Car {
	car := &Car{ID: id, Trips: []Trip{}}
	car.Apply(in)
	return car
}

// Apply overwrites the descriptive fields. ID and Trips are left alone.
func (c *Car) Apply(in CarInput) {
	c.Size = in.Size
	c.Fuel = in.Fuel
	c.Doors = in.Doors
	c.Transmission = in.Transmission
}

func (c *Car) Input() CarInput {
	return CarInput{
		Size:         c.Size,
		Fuel:         c.Fuel,
		Doors:        c.Doors,
		Transmission: c.Transmission,
	}
}

// NextTripID returns an id that no trip of this car uses yet.
func (c *Car) NextTripID() int {
	next := 1
	for _, t := range c.Trips {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

func (c *Car) AppendTrip(id int, in TripInput) Trip {
	trip := NewTrip(id, c.ID, in)
	c.Trips = append(c.Trips, trip)
	return trip
}

// Clone returns a deep copy; the trip slice and descriptions are not shared.
func (c *Car) Clone() *Car {
	out := *c
	out.Trips = make([]Trip, len(c.Trips))
	for i, t := range c.Trips {
		out.Trips[i] = t.Clone()
	}
	return &out
}
