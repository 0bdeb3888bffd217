package model

import (
	"time"
)

type ClientStatus string

const (
	ClientPending   ClientStatus = "pending"
	ClientContacted ClientStatus = "contacted"
	ClientConverted ClientStatus = "converted"
)

const ClientSourceContactForm = "contact_form"

// Client is a lead captured from the public contact form.
type Client struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null" json:"email"`
	Phone     string       `json:"phone"`
	Company   string       `json:"company"`
	Message   string       `gorm:"type:text" json:"message"`
	Source    string       `gorm:"type:varchar(50);default:contact_form" json:"source"`
	Status    ClientStatus `gorm:"type:varchar(20);default:pending" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// IsValidClientStatus reports whether s is one of the known lead states.
func IsValidClientStatus(s string) bool {
	switch ClientStatus(s) {
	case ClientPending, ClientContacted, ClientConverted:
		return true
	}
	return false
}
