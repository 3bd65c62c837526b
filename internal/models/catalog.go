// internal/models/catalog.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a listed residential/commercial property shown in the catalog.
type Property struct {
	BaseModel
	Name         string         `json:"name" gorm:"size:150;not null"`
	Cluster      string         `json:"cluster,omitempty" gorm:"size:100;index"`
	Type         string         `json:"type" gorm:"size:30;index"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"type:decimal(15,2)"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	LandArea     float64        `json:"land_area"`
	BuildingArea float64        `json:"building_area"`
	ImageURL     string         `json:"image_url,omitempty" gorm:"size:500"`
	Status       PropertyStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`
}

type Event struct {
	BaseModel
	Title       string    `json:"title" gorm:"size:150;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:50;index"`
	Location    string    `json:"location" gorm:"size:150"`
	StartsAt    time.Time `json:"starts_at" gorm:"index"`
	EndsAt      time.Time `json:"ends_at"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"size:500"`
}

// Destination is a transport/point-of-interest entry shown on the map.
type Destination struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:150;not null"`
	Category    string  `json:"category" gorm:"size:50;index"`
	Address     string  `json:"address" gorm:"size:255"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty" gorm:"type:text"`
}

type Notification struct {
	BaseModel
	UserID  uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Type    string     `json:"type" gorm:"type:varchar(50);not null;index"`
	Title   string     `json:"title" gorm:"size:255;not null"`
	Message string     `json:"message" gorm:"type:text;not null"`
	Data    JSONB      `json:"data,omitempty" gorm:"type:jsonb"`
	ReadAt  *time.Time `json:"read_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
