// Package store keeps train records and hands out full snapshots of them.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"train-search-server/models"
)

var ErrClosed = errors.New("store is closed")

// Store is the schedule store. FetchAllTrains returns every train in creation
// order; the returned slice is owned by the caller.
type Store interface {
	FetchAllTrains(ctx context.Context) ([]models.Train, error)
	CreateTrain(ctx context.Context, train models.Train) (models.Train, error)
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverSnapshot = "snapshot"
	DriverSQLite   = "sqlite"
)

// Open builds the store for driver. path is ignored by the memory driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSnapshot:
		return OpenSnapshot(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func assignID(train models.Train) models.Train {
	if train.ID == "" {
		train.ID = uuid.NewString()
	}
	return train
}

func cloneAll(trains []models.Train) []models.Train {
	out := make([]models.Train, len(trains))
	for i, t := range trains {
		out[i] = t.Clone()
	}
	return out
}
