package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

var departureTimePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidDepartureTime reports whether s is a 24h HH:mm time. A single-digit hour is accepted.
func ValidDepartureTime(s string) bool {
	return departureTimePattern.MatchString(s)
}

// Validate applies the creation rules to a train that did not come through the
// HTTP binding layer, e.g. a bulk import.
func (t Train) Validate() error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("train name is required"))
	}
	for i, s := range t.Stops {
		if s.Station == "" {
			errs = append(errs, fmt.Errorf("stops[%d]: station name is required", i))
		}
		if math.IsNaN(s.DistanceFromPrevious) || math.IsInf(s.DistanceFromPrevious, 0) {
			errs = append(errs, fmt.Errorf("stops[%d]: distance from previous station must be a number", i))
		}
		if !ValidDepartureTime(s.DepartureTime) {
			errs = append(errs, fmt.Errorf("stops[%d]: departure time %q must be in HH:mm format", i, s.DepartureTime))
		}
	}
	return errors.Join(errs...)
}
