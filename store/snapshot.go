package store

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"train-search-server/models"
)

// Snapshot is a memory store mirrored to a gob file. The file is rewritten in
// full after every create.
type Snapshot struct {
	*Memory
	path    string
	writeMu sync.Mutex
}

type snapshotFile struct {
	Trains []models.Train
}

func OpenSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot store requires a file path")
	}

	trains, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded snapshot from %s: %d trains", path, len(trains))
	return &Snapshot{Memory: NewMemory(trains...), path: path}, nil
}

func loadSnapshot(path string) ([]models.Train, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	var snap snapshotFile
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap.Trains, nil
}

func (s *Snapshot) CreateTrain(ctx context.Context, train models.Train) (models.Train, error) {
	if err := ctx.Err(); err != nil {
		return models.Train{}, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	trains, err := s.Memory.FetchAllTrains(ctx)
	if err != nil {
		return models.Train{}, err
	}
	train = assignID(train.Clone())
	if err := writeSnapshot(s.path, append(trains, train)); err != nil {
		return models.Train{}, err
	}
	return s.Memory.CreateTrain(ctx, train)
}

func writeSnapshot(path string, trains []models.Train) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".trains-*.gob")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(snapshotFile{Trains: trains}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
