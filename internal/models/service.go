package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PricingType string

const (
	// PricingOnce charges the base price a single time, regardless of duration.
	PricingOnce PricingType = "Once"
	// PricingHourly charges the base price per contracted hour.
	PricingHourly PricingType = "Hourly"
)

// Label is the customer-facing wording for the charge model, shown next to
// the base price on the hire form.
func (p PricingType) Label() string {
	switch p {
	case PricingOnce:
		return "valor único"
	case PricingHourly:
		return "por hora"
	}
	return string(p)
}

type ServiceCategory struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`
	PricingType PricingType `gorm:"type:varchar(10);not null" json:"pricing_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (sc *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return
}

type Service struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceCategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_category_id"`

	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	BasePrice   float64 `gorm:"type:decimal(10,2);not null" json:"base_price"`

	// Details keeps whatever extra structure the category form collects
	// (coverage area, available weekdays, ...).
	Details datatypes.JSON `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User            *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ServiceCategory *ServiceCategory `gorm:"foreignKey:ServiceCategoryID" json:"service_category,omitempty"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
