package store

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"train-search-server/models"
)

type trainRecord struct {
	Seq   uint         `gorm:"primaryKey;autoIncrement"`
	UID   string       `gorm:"column:uid;uniqueIndex;not null"`
	Name  string       `gorm:"not null"`
	Stops []stopRecord `gorm:"foreignKey:TrainSeq;constraint:OnDelete:CASCADE"`
}

func (trainRecord) TableName() string { return "trains" }

type stopRecord struct {
	ID                   uint    `gorm:"primaryKey;autoIncrement"`
	TrainSeq             uint    `gorm:"index;not null"`
	Position             int     `gorm:"not null"`
	Station              string  `gorm:"not null"`
	DistanceFromPrevious float64 `gorm:"not null"`
	DepartureTime        string  `gorm:"not null"`
}

func (stopRecord) TableName() string { return "stops" }

// SQLite persists trains through gorm. Stop order is kept in the position column.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (and migrates) the database at dsn. Use ":memory:" for a
// throwaway database.
func OpenSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite store requires a database path")
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	// A single connection keeps ":memory:" databases alive and shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&trainRecord{}, &stopRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	log.Printf("SQLite store ready at %s", dsn)
	return &SQLite{db: db}, nil
}

func (s *SQLite) FetchAllTrains(ctx context.Context) ([]models.Train, error) {
	var records []trainRecord
	err := s.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("seq ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("fetch trains: %w", err)
	}

	trains := make([]models.Train, 0, len(records))
	for _, r := range records {
		trains = append(trains, r.toModel())
	}
	return trains, nil
}

func (s *SQLite) CreateTrain(ctx context.Context, train models.Train) (models.Train, error) {
	train = assignID(train.Clone())
	record := newTrainRecord(train)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return models.Train{}, fmt.Errorf("create train %q: %w", train.Name, err)
	}
	return train, nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newTrainRecord(train models.Train) trainRecord {
	record := trainRecord{UID: train.ID, Name: train.Name, Stops: make([]stopRecord, 0, len(train.Stops))}
	for i, stop := range train.Stops {
		record.Stops = append(record.Stops, stopRecord{
			Position:             i,
			Station:              stop.Station,
			DistanceFromPrevious: stop.DistanceFromPrevious,
			DepartureTime:        stop.DepartureTime,
		})
	}
	return record
}

func (r trainRecord) toModel() models.Train {
	train := models.Train{ID: r.UID, Name: r.Name, Stops: make([]models.Stop, 0, len(r.Stops))}
	for _, s := range r.Stops {
		train.Stops = append(train.Stops, models.Stop{
			Station:              s.Station,
			DistanceFromPrevious: s.DistanceFromPrevious,
			DepartureTime:        s.DepartureTime,
		})
	}
	return train
}
