package store

import (
	"context"
	"sync"

	"train-search-server/models"
)

type Memory struct {
	mu     sync.RWMutex
	trains []models.Train
	closed bool
}

func NewMemory(trains ...models.Train) *Memory {
	m := &Memory{}
	for _, t := range trains {
		m.trains = append(m.trains, assignID(t.Clone()))
	}
	return m
}

func (m *Memory) FetchAllTrains(ctx context.Context) ([]models.Train, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return cloneAll(m.trains), nil
}

func (m *Memory) CreateTrain(ctx context.Context, train models.Train) (models.Train, error) {
	if err := ctx.Err(); err != nil {
		return models.Train{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return models.Train{}, ErrClosed
	}
	train = assignID(train.Clone())
	m.trains = append(m.trains, train)
	return train.Clone(), nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
