package history

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ytget/flat-launcher/internal/launch"
	"github.com/ytget/flat-launcher/internal/model"
)

// DatabaseFileName is the history database created inside the game directory
const DatabaseFileName = "launcher.db"

// DefaultRecentLimit is how many records the Play view lists
const DefaultRecentLimit = 10

// ErrUnknownRecord is returned when finishing a launch that was never started
var ErrUnknownRecord = errors.New("unknown launch record")

// Record is one launch attempt
type Record struct {
	ID         string `gorm:"primaryKey"`
	VersionID  string `gorm:"not null;index"`
	Username   string
	RAMMB      int                `gorm:"column:ram_mb"`
	Demo       bool               `gorm:"not null"`
	Status     model.LaunchStatus `gorm:"not null"`
	ExitCode   int
	Error      string
	StartedAt  time.Time `gorm:"not null;index"`
	FinishedAt *time.Time
}

// Duration returns how long the attempt took, or zero while it is still open
func (r Record) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store reads and writes launch records
type Store struct {
	database *gorm.DB
}

// Open opens or creates the history database at path and applies migrations
func Open(path string) (*Store, error) {
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %s: %w", path, err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access history database: %w", err)
	}
	// the worker writes while the UI reads
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(&Record{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	log.WithField("path", path).Debug("History database opened")
	return &Store{database: database}, nil
}

// OpenInDirectory opens the history database inside dir
func OpenInDirectory(dir string) (*Store, error) {
	return Open(filepath.Join(dir, DatabaseFileName))
}

// Close releases the database
func (s *Store) Close() error {
	sqlDB, err := s.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordStart stores a new attempt in the Launching state
func (s *Store) RecordStart(id string, req model.LaunchRequest, at time.Time) error {
	record := Record{
		ID:        id,
		VersionID: req.VersionID,
		Username:  req.Username,
		RAMMB:     req.RAMMB,
		Demo:      req.Demo,
		Status:    model.LaunchStatusLaunching,
		StartedAt: at,
	}
	if result := s.database.Create(&record); result.Error != nil {
		return fmt.Errorf("failed to store launch %s: %w", id, result.Error)
	}
	return nil
}

// RecordFinish stores the outcome of an attempt
func (s *Store) RecordFinish(id string, out launch.Outcome) error {
	errText := ""
	if out.Err != nil {
		errText = out.Err.Error()
	}
	finishedAt := out.FinishedAt

	result := s.database.Model(&Record{}).Where("id = ?", id).Updates(map[string]interface{}{
		"username":    out.Username,
		"status":      out.Status,
		"exit_code":   out.ExitCode,
		"error":       errText,
		"finished_at": &finishedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update launch %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRecord, id)
	}
	return nil
}

// Recent returns up to limit records, newest first
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var records []Record
	if result := s.database.Order("started_at desc").Limit(limit).Find(&records); result.Error != nil {
		return nil, fmt.Errorf("failed to read launch history: %w", result.Error)
	}
	return records, nil
}

// Get returns a single record
func (s *Store) Get(id string) (Record, error) {
	var record Record
	if result := s.database.First(&record, "id = ?", id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Record{}, fmt.Errorf("%w: %s", ErrUnknownRecord, id)
		}
		return Record{}, result.Error
	}
	return record, nil
}

// Clear deletes every record
func (s *Store) Clear() error {
	if result := s.database.Where("1 = 1").Delete(&Record{}); result.Error != nil {
		return fmt.Errorf("failed to clear launch history: %w", result.Error)
	}
	return nil
}
