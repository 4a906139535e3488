package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthLevel string

const (
	AuthLevelCustomer AuthLevel = "Customer"
	AuthLevelProvider AuthLevel = "Provider"
	AuthLevelAdmin    AuthLevel = "Admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Fullname string    `gorm:"not null" json:"fullname"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	CPF      string    `gorm:"column:cpf;type:varchar(14);uniqueIndex;not null" json:"cpf"`

	Password  string    `gorm:"not null" json:"-"`
	AuthLevel AuthLevel `gorm:"type:varchar(20);not null;index" json:"auth_level"`
	Rating    float64   `gorm:"default:0" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// addresses.user_id -> users.id
	Addresses []Address `gorm:"foreignKey:UserID;references:ID" json:"addresses,omitempty"`
	Services  []Service `gorm:"foreignKey:UserID;references:ID" json:"services,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
