package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Child is a tracked child profile. All gamification records are owned by
// (and lifetime-bound to) a child row.
type Child struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	DateOfBirth string    `gorm:"type:char(10);not null" json:"date_of_birth"`
	Gender      string    `gorm:"size:10" json:"gender"`
	Region      string    `gorm:"size:100" json:"region"`
	WeightKg    *float64  `json:"weight_kg"`
	HeightCm    *float64  `json:"height_cm"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (c *Child) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
