package models

// Stop is one station entry in a train's ordered route.
type Stop struct {
	Station              string  `json:"station"`
	DistanceFromPrevious float64 `json:"distanceFromPrevious"`
	DepartureTime        string  `json:"departureTime"` // HH:mm, 24h
}

// Train is a named, ordered sequence of stops.
type Train struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Stops []Stop `json:"stops"`
}

// Clone returns a copy of t that shares no memory with it.
func (t Train) Clone() Train {
	c := t
	if t.Stops != nil {
		c.Stops = make([]Stop, len(t.Stops))
		copy(c.Stops, t.Stops)
	}
	return c
}

// Itinerary is the priced, timed summary of one direct segment on a single train.
type Itinerary struct {
	Train    string  `json:"train"`
	Starting string  `json:"starting"`
	Reaching string  `json:"reaching"`
	Distance float64 `json:"distance"`
	Price    string  `json:"price"`
}
