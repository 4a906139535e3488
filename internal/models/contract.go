package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contract struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AddressID *uuid.UUID `gorm:"type:uuid;index" json:"address_id,omitempty"`

	TotalPrice       float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	ExpectedDuration int       `json:"expected_duration"`
	StartDate        time.Time `json:"start_date"`
	Message          string    `gorm:"type:text" json:"message"`

	Pending   bool `gorm:"default:true" json:"pending"`
	Accepted  bool `gorm:"default:false" json:"accepted"`
	Completed bool `gorm:"default:false" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Address *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

func (ct *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return
}
