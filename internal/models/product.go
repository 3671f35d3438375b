package models

import (
	"time"
)

type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"uniqueIndex;size:64;not null" json:"slug"`
	Title        string    `gorm:"not null" json:"title"`
	MainImage    string    `json:"main_image"`
	Price        int       `gorm:"default:0" json:"price"` // cents not needed, catalog prices are whole units
	Description  string    `gorm:"type:text" json:"description"`
	Manufacturer string    `json:"manufacturer"`
	InStock      int       `gorm:"default:0" json:"in_stock"`
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Category     Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
