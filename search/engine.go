// Package search finds the trains that serve a station pair directly and
// prices each qualifying segment.
package search

import (
	"math"

	"train-search-server/models"
)

const notFound = -1

// Search returns one itinerary per train that stops at source strictly before
// destination, in the order the trains were given. Trains are not modified.
//
// When a station occurs more than once in a train only its first occurrence
// is considered, for both roles.
func Search(trains []models.Train, source, destination string) ([]models.Itinerary, error) {
	result := make([]models.Itinerary, 0)

	for _, train := range trains {
		sourceIndex := indexOfStation(train.Stops, source)
		destinationIndex := indexOfStation(train.Stops, destination)

		if sourceIndex == notFound || destinationIndex == notFound || sourceIndex >= destinationIndex {
			continue
		}

		distance, err := segmentDistance(train, sourceIndex, destinationIndex)
		if err != nil {
			return nil, err
		}

		result = append(result, models.Itinerary{
			Train:    train.Name,
			Starting: train.Stops[sourceIndex].DepartureTime,
			Reaching: train.Stops[destinationIndex].DepartureTime,
			Distance: distance,
			Price:    Fare(distance),
		})
	}

	return result, nil
}

func indexOfStation(stops []models.Stop, station string) int {
	for i, stop := range stops {
		if stop.Station == station {
			return i
		}
	}
	return notFound
}

// segmentDistance sums distanceFromPrevious over stops[from..to] inclusive.
// The source stop's own incoming leg is part of the sum.
func segmentDistance(train models.Train, from, to int) (float64, error) {
	total := 0.0
	for i := from; i <= to; i++ {
		d := train.Stops[i].DistanceFromPrevious
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, &InvalidDataError{Train: train.Name, Stop: i, Reason: "distanceFromPrevious is not a finite number"}
		}
		total += d
	}
	if math.IsInf(total, 0) {
		return 0, &InvalidDataError{Train: train.Name, Stop: to, Reason: "segment distance overflows"}
	}
	if math.IsInf(total*FareRate, 0) {
		return 0, &InvalidDataError{Train: train.Name, Stop: to, Reason: "segment fare overflows"}
	}
	return total, nil
}
