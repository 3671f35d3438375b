package models

import (
	"time"
)

// Feedback is one rating+comment record tied to exactly one product and one
// account. A user may leave at most one per product, enforced by the composite
// unique index; ownership never changes after creation.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Fid       string    `gorm:"uniqueIndex;size:8;not null" json:"fid"`
	ProductID uint      `gorm:"not null;index;uniqueIndex:idx_feedback_product_user" json:"product_id"`
	Product   Product   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_feedback_product_user" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
