package client

import "time"

// Client is a customer record owned by at most one commercial. The owner
// reference is cleared, not cascaded, when that user is deleted.
type Client struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;size:100;not null"`
	Email        string    `gorm:"column:email;size:100;uniqueIndex;not null"`
	Phone        string    `gorm:"column:phone;size:20"`
	Company      string    `gorm:"column:company;size:100"`
	DateCreated  time.Time `gorm:"column:date_created"`
	DateUpdated  time.Time `gorm:"column:date_updated"`
	CommercialID *int64    `gorm:"column:commercial_id"`
}

func (Client) TableName() string { return "clients" }

// CreateClientDTO carries already-parsed values from the CLI boundary.
type CreateClientDTO struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// UpdateClientDTO has partial-update semantics: blank fields keep their
// prior value, so an all-blank submission changes nothing.
type UpdateClientDTO struct {
	Name    string
	Email   string
	Phone   string
	Company string
}
