package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is one row of the kv_entries table.
type kvEntry struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// SQLitePort stores entries in a SQLite database through gorm.
type SQLitePort struct {
	db *gorm.DB
}

// OpenSQLitePort opens (and migrates) localstore.db in dir.
func OpenSQLitePort(dir string, log zerolog.Logger) (*SQLitePort, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	dsn := filepath.Join(dir, "localstore.db")

	dbLogger := logger.New(
		&log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate store db: %w", err)
	}
	return &SQLitePort{db: db}, nil
}

func (p *SQLitePort) Get(key string) ([]byte, bool, error) {
	var entry kvEntry
	err := p.db.Where("name = ?", key).First(&entry).Error
	switch {
	case err == nil:
		return entry.Value, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("find entry: %w", err)
	}
}

func (p *SQLitePort) Set(key string, value []byte) error {
	entry := kvEntry{Name: key, Value: value, UpdatedAt: time.Now()}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

func (p *SQLitePort) Delete(key string) error {
	if err := p.db.Where("name = ?", key).Delete(&kvEntry{}).Error; err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (p *SQLitePort) Keys() ([]string, error) {
	var keys []string
	if err := p.db.Model(&kvEntry{}).Order("name").Pluck("name", &keys).Error; err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Close releases the underlying database handle.
func (p *SQLitePort) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
