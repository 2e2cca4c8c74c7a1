package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a shopper review. Only approved reviews are listed publicly.
type Review struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID     string    `gorm:"column:product_id;not null;index:ix_reviews_product_approved,priority:1"`
	ReviewerName  string    `gorm:"column:reviewer_name;not null"`
	ReviewerEmail string    `gorm:"column:reviewer_email;not null"`
	Rating        int       `gorm:"column:rating;not null"`
	Comment       string    `gorm:"column:comment;not null"`
	Approved      bool      `gorm:"column:approved;not null;default:false;index:ix_reviews_product_approved,priority:2"`
	ReviewDate    string    `gorm:"column:review_date;not null"`
	ImageURLs     []string  `gorm:"column:image_urls;type:jsonb;serializer:json"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
