package store

import "time"

// Garden is a named canvas with optional background and per-garden defaults
// applied to newly placed or generated trees. Deletion is a soft flag so
// undo can resurrect records.
type Garden struct {
	ID              string `gorm:"primaryKey;type:text"`
	Name            string `gorm:"type:text;not null"`
	Description     string `gorm:"type:text"`
	Location        string `gorm:"type:text"`
	BackgroundImage string `gorm:"type:text"`

	DefaultSort        string `gorm:"type:text"`
	DefaultYearPlanted int
	DefaultOwner       string `gorm:"type:text"`

	IsActive  bool `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tree is a placed tree with horticultural metadata. Positions are percent
// of the garden canvas, origin top-left.
type Tree struct {
	ID       string `gorm:"primaryKey;type:text"`
	GardenID string `gorm:"type:text;not null;index"`
	Type     string `gorm:"type:text;not null"`

	Sort        string `gorm:"type:text"`
	YearPlanted int
	Owner       string `gorm:"type:text"`
	Status      string `gorm:"type:text"`
	PhotoURL    string `gorm:"type:text"`

	XPercent     float64 `gorm:"not null"`
	YPercent     float64 `gorm:"not null"`
	CustomAvatar string  `gorm:"type:text"`

	IsActive  bool `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a placed building/other element. Only type, description, and
// position are tracked.
type Item struct {
	ID       string `gorm:"primaryKey;type:text"`
	GardenID string `gorm:"type:text;not null;index"`
	Type     string `gorm:"type:text;not null"`

	Description string `gorm:"type:text"`

	XPercent     float64 `gorm:"not null"`
	YPercent     float64 `gorm:"not null"`
	CustomAvatar string  `gorm:"type:text"`

	IsActive  bool `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is the single-record account backing the authentication collaborator.
type User struct {
	ID         string `gorm:"primaryKey;type:text"`
	Username   string `gorm:"type:text;not null;uniqueIndex"`
	SecretHash string `gorm:"type:text;not null"`

	IsActive  bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
