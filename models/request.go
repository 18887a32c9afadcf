package models

// StopRequest mirrors Stop with binding rules.
type StopRequest struct {
	Station              string  `json:"station" binding:"required"`
	DistanceFromPrevious Numeric `json:"distanceFromPrevious" binding:"numeric_value"`
	DepartureTime        string  `json:"departureTime" binding:"hhmm"`
}

type CreateTrainRequest struct {
	Name  string        `json:"name" binding:"required"`
	Stops []StopRequest `json:"stops" binding:"dive"`
}

// ToTrain converts a bound request into a Train. Call only after binding succeeded.
func (r CreateTrainRequest) ToTrain() Train {
	train := Train{Name: r.Name, Stops: make([]Stop, 0, len(r.Stops))}
	for _, s := range r.Stops {
		train.Stops = append(train.Stops, Stop{
			Station:              s.Station,
			DistanceFromPrevious: s.DistanceFromPrevious.Float64(),
			DepartureTime:        s.DepartureTime,
		})
	}
	return train
}

type SearchQuery struct {
	Source      string `form:"source" binding:"required"`
	Destination string `form:"destination" binding:"required"`
}
