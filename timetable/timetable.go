// Package timetable reads train timetables from CSV or JSON files for bulk import.
//
// CSV files need a header with the columns train, station, distanceFromPrevious
// and departureTime. Rows for the same train are grouped in file order; trains
// are returned in order of first appearance. JSON files hold an array of
// {name, stops:[{station, distanceFromPrevious, departureTime}]} objects.
package timetable

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"train-search-server/models"
)

var requiredColumns = []string{"train", "station", "distanceFromPrevious", "departureTime"}

// Load picks the reader from the file extension (.csv or .json).
func Load(path string) ([]models.Train, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timetable: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, fmt.Errorf("unsupported timetable format %q", filepath.Ext(path))
	}
}

func ReadJSON(r io.Reader) ([]models.Train, error) {
	var trains []models.Train
	if err := json.NewDecoder(r).Decode(&trains); err != nil {
		return nil, fmt.Errorf("decode timetable JSON: %w", err)
	}
	return trains, nil
}

func ReadCSV(r io.Reader) ([]models.Train, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read timetable header: %w", err)
	}
	h := headerIndex(header)
	for _, col := range requiredColumns {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("timetable header is missing column %q", col)
		}
	}

	var trains []models.Train
	byName := make(map[string]int)

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read timetable line %d: %w", line, err)
		}
		get := func(k string) string {
			if i := h[k]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		distance, err := strconv.ParseFloat(get("distanceFromPrevious"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: distanceFromPrevious %q is not a number", line, get("distanceFromPrevious"))
		}

		name := get("train")
		i, ok := byName[name]
		if !ok {
			i = len(trains)
			byName[name] = i
			trains = append(trains, models.Train{Name: name})
		}
		trains[i].Stops = append(trains[i].Stops, models.Stop{
			Station:              get("station"),
			DistanceFromPrevious: distance,
			DepartureTime:        get("departureTime"),
		})
	}

	return trains, nil
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		m[strings.TrimSpace(k)] = i
	}
	return m
}
