package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is the deduplicated contact record shared by a buyer's orders.
// NameKey and PhoneKey hold the normalized match key.
type Customer struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	NameKey    string    `gorm:"column:name_key;not null;index:ix_customers_match_key,priority:1"`
	Email      string    `gorm:"column:email;not null;default:''"`
	Number     string    `gorm:"column:number;not null"`
	PhoneKey   string    `gorm:"column:phone_key;not null;index:ix_customers_match_key,priority:2"`
	Address    string    `gorm:"column:address;not null;default:''"`
	City       string    `gorm:"column:city;not null;default:''"`
	Province   string    `gorm:"column:province;not null;default:''"`
	PostalCode string    `gorm:"column:postal_code;not null;default:''"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
