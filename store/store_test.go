package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"train-search-server/models"
)

func sampleTrains() []models.Train {
	return []models.Train{
		{Name: "Express1", Stops: []models.Stop{
			{Station: "A", DistanceFromPrevious: 0, DepartureTime: "08:00"},
			{Station: "B", DistanceFromPrevious: 100, DepartureTime: "09:00"},
			{Station: "C", DistanceFromPrevious: 50, DepartureTime: "10:00"},
		}},
		{Name: "Local2", Stops: []models.Stop{
			{Station: "C", DistanceFromPrevious: 0, DepartureTime: "11:00"},
			{Station: "B", DistanceFromPrevious: 50, DepartureTime: "11:40"},
		}},
		{Name: "Stub3"},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.FetchAllTrains(ctx)
	if err != nil {
		t.Fatalf("FetchAllTrains on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store, got %d trains", len(got))
	}

	var created []models.Train
	for _, train := range sampleTrains() {
		c, err := s.CreateTrain(ctx, train)
		if err != nil {
			t.Fatalf("CreateTrain(%s): %v", train.Name, err)
		}
		if c.ID == "" {
			t.Errorf("CreateTrain(%s) did not assign an ID", train.Name)
		}
		created = append(created, c)
	}

	got, err = s.FetchAllTrains(ctx)
	if err != nil {
		t.Fatalf("FetchAllTrains: %v", err)
	}
	if len(got) != len(created) {
		t.Fatalf("expected %d trains, got %d", len(created), len(got))
	}
	for i := range created {
		if got[i].ID != created[i].ID || got[i].Name != created[i].Name {
			t.Errorf("train %d: got %s/%s, want %s/%s", i, got[i].ID, got[i].Name, created[i].ID, created[i].Name)
		}
		if len(got[i].Stops) != len(created[i].Stops) {
			t.Errorf("train %d: got %d stops, want %d", i, len(got[i].Stops), len(created[i].Stops))
			continue
		}
		for j := range created[i].Stops {
			if got[i].Stops[j] != created[i].Stops[j] {
				t.Errorf("train %d stop %d: got %+v, want %+v", i, j, got[i].Stops[j], created[i].Stops[j])
			}
		}
	}

	// callers own the snapshot
	if len(got[0].Stops) > 0 {
		got[0].Stops[0].Station = "mutated"
		again, err := s.FetchAllTrains(ctx)
		if err != nil {
			t.Fatalf("FetchAllTrains: %v", err)
		}
		if again[0].Stops[0].Station == "mutated" {
			t.Errorf("mutating a fetched train changed the store")
		}
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	exerciseStore(t, s)
}

func TestMemoryStoreKeepsGivenID(t *testing.T) {
	s := NewMemory()
	c, err := s.CreateTrain(context.Background(), models.Train{ID: "fixed", Name: "T"})
	if err != nil {
		t.Fatalf("CreateTrain: %v", err)
	}
	if c.ID != "fixed" {
		t.Errorf("expected ID fixed, got %s", c.ID)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemory(sampleTrains()...)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.FetchAllTrains(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := s.CreateTrain(context.Background(), models.Train{Name: "T"}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	s := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FetchAllTrains(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSnapshotStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trains.gob")

	s, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("OpenSnapshot: %v", err)
	}
	exerciseStore(t, s)

	want, err := s.FetchAllTrains(context.Background())
	if err != nil {
		t.Fatalf("FetchAllTrains: %v", err)
	}

	reopened, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("reopen snapshot: %v", err)
	}
	got, err := reopened.FetchAllTrains(context.Background())
	if err != nil {
		t.Fatalf("FetchAllTrains after reopen: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reopened snapshot differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestSnapshotStoreRequiresPath(t *testing.T) {
	if _, err := OpenSnapshot(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trains.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	created, err := s.CreateTrain(context.Background(), sampleTrains()[0])
	if err != nil {
		t.Fatalf("CreateTrain: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.FetchAllTrains(context.Background())
	if err != nil {
		t.Fatalf("FetchAllTrains: %v", err)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], created) {
		t.Errorf("got %+v, want [%+v]", got, created)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		driver  string
		path    string
		wantErr bool
	}{
		{driver: DriverMemory},
		{driver: DriverSnapshot, path: filepath.Join(dir, "t.gob")},
		{driver: DriverSQLite, path: filepath.Join(dir, "t.db")},
		{driver: "mongodb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			s, err := Open(tt.driver, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for driver %q", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open(%q): %v", tt.driver, err)
			}
			s.Close()
		})
	}
}

type countingStore struct {
	*Memory
	fetches int
	failing bool
}

func (c *countingStore) FetchAllTrains(ctx context.Context) ([]models.Train, error) {
	c.fetches++
	if c.failing {
		return nil, errors.New("backend down")
	}
	return c.Memory.FetchAllTrains(ctx)
}

func TestCachedStore(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(sampleTrains()[:1]...)}
	s := NewCached(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := s.FetchAllTrains(ctx)
		if err != nil {
			t.Fatalf("FetchAllTrains: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 train, got %d", len(got))
		}
	}
	if inner.fetches != 1 {
		t.Errorf("expected 1 backend fetch, got %d", inner.fetches)
	}

	if _, err := s.CreateTrain(ctx, sampleTrains()[1]); err != nil {
		t.Fatalf("CreateTrain: %v", err)
	}
	got, err := s.FetchAllTrains(ctx)
	if err != nil {
		t.Fatalf("FetchAllTrains: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected created train to be visible, got %d trains", len(got))
	}
	if inner.fetches != 2 {
		t.Errorf("expected create to drop the cached snapshot, got %d fetches", inner.fetches)
	}
}

func TestCachedStoreDoesNotCacheErrors(t *testing.T) {
	inner := &countingStore{Memory: NewMemory(), failing: true}
	s := NewCached(inner, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := s.FetchAllTrains(context.Background()); err == nil {
			t.Fatal("expected backend error")
		}
	}
	if inner.fetches != 2 {
		t.Errorf("expected every failed fetch to reach the backend, got %d", inner.fetches)
	}
}

func TestCachedStoreReturnsCopies(t *testing.T) {
	s := NewCached(NewMemory(sampleTrains()[:1]...), time.Minute)

	first, _ := s.FetchAllTrains(context.Background())
	first[0].Stops[0].Station = "mutated"

	second, err := s.FetchAllTrains(context.Background())
	if err != nil {
		t.Fatalf("FetchAllTrains: %v", err)
	}
	if second[0].Stops[0].Station == "mutated" {
		t.Error("cached snapshot was modified through a previous result")
	}
}
