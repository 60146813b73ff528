package models

import (
	"time"

	"gorm.io/gorm"
)

type Hotel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"column:name;size:255" json:"name"`
	Address string `gorm:"column:address;type:text" json:"address"`
	Contact string `gorm:"column:contact;size:64" json:"contact"`
	City    string `gorm:"column:city;size:128" json:"city"`

	// One hotel per owner.
	OwnerID string `gorm:"column:owner_id;size:191;uniqueIndex" json:"owner"`
	Owner   User   `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
}
