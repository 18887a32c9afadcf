package search

import (
	"context"
	"fmt"
	"log"

	"train-search-server/models"
)

// Fetcher supplies a complete snapshot of every stored train.
type Fetcher interface {
	FetchAllTrains(ctx context.Context) ([]models.Train, error)
}

// Service runs searches against the snapshot returned by its Fetcher.
type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

func (s *Service) Search(ctx context.Context, source, destination string) ([]models.Itinerary, error) {
	trains, err := s.fetcher.FetchAllTrains(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	itineraries, err := Search(trains, source, destination)
	if err != nil {
		return nil, err
	}

	log.Printf("Search %s -> %s: %d of %d trains match", source, destination, len(itineraries), len(trains))
	return itineraries, nil
}
