package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements Store on a local SQLite database via GORM.
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// SQLiteConfig holds SQLite-specific configuration.
type SQLiteConfig struct {
	Path string
	// LogLevel is one of "silent", "error", "warn", "info"; empty means silent.
	LogLevel string
}

func parseLogLevel(s string) logger.LogLevel {
	switch s {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

// NewSQLiteStore opens (or creates) the database file.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{db: db, path: cfg.Path}, nil
}

// Connect configures the connection pool and pings the database.
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&Garden{},
		&Tree{},
		&Item{},
		&User{},
	)
}

// Garden operations

func (s *SQLiteStore) ListGardens(ctx context.Context) ([]Garden, error) {
	var gardens []Garden
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&gardens).Error
	return gardens, err
}

func (s *SQLiteStore) GetGarden(ctx context.Context, id string) (*Garden, error) {
	var garden Garden
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&garden).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &garden, nil
}

func (s *SQLiteStore) InsertGarden(ctx context.Context, garden *Garden) error {
	if garden.ID == "" {
		garden.ID = uuid.NewString()
	}
	garden.IsActive = true
	return s.db.WithContext(ctx).Create(garden).Error
}

func (s *SQLiteStore) UpdateGardenFields(ctx context.Context, id string, patch map[string]any) error {
	return s.db.WithContext(ctx).Model(&Garden{}).
		Where("id = ?", id).
		Updates(patch).Error
}

// Tree operations

func (s *SQLiteStore) ListTrees(ctx context.Context, gardenID string) ([]Tree, error) {
	var trees []Tree
	err := s.db.WithContext(ctx).
		Where("garden_id = ? AND is_active = ?", gardenID, true).
		Order("y_percent desc").
		Order("x_percent asc").
		Find(&trees).Error
	return trees, err
}

func (s *SQLiteStore) InsertTrees(ctx context.Context, trees []Tree) ([]Tree, error) {
	for i := range trees {
		if trees[i].ID == "" {
			trees[i].ID = uuid.NewString()
		}
		trees[i].IsActive = true
	}
	if err := s.db.WithContext(ctx).Create(&trees).Error; err != nil {
		return nil, err
	}
	return trees, nil
}

func (s *SQLiteStore) UpdateTreeFields(ctx context.Context, id string, patch map[string]any) error {
	return s.db.WithContext(ctx).Model(&Tree{}).
		Where("id = ?", id).
		Updates(patch).Error
}

func (s *SQLiteStore) UpdateTreesFields(ctx context.Context, ids []string, patch map[string]any) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&Tree{}).
		Where("id IN ?", ids).
		Updates(patch).Error
}

// Item operations

func (s *SQLiteStore) ListItems(ctx context.Context, gardenID string) ([]Item, error) {
	var items []Item
	err := s.db.WithContext(ctx).
		Where("garden_id = ? AND is_active = ?", gardenID, true).
		Order("y_percent desc").
		Order("x_percent asc").
		Find(&items).Error
	return items, err
}

func (s *SQLiteStore) InsertItem(ctx context.Context, item *Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.IsActive = true
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *SQLiteStore) UpdateItemFields(ctx context.Context, id string, patch map[string]any) error {
	return s.db.WithContext(ctx).Model(&Item{}).
		Where("id = ?", id).
		Updates(patch).Error
}

// User operations

func (s *SQLiteStore) GetUserByName(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", username, true).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLiteStore) InsertUser(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.IsActive = true
	return s.db.WithContext(ctx).Create(user).Error
}
