package models

import (
	"time"

	"gorm.io/datatypes"
)

type GuestStatus string

const (
	GuestStatusInvited   GuestStatus = "invited"
	GuestStatusConfirmed GuestStatus = "confirmed"
	GuestStatusPresent   GuestStatus = "present"
)

type Order struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

type Guest struct {
	Base
	EventID     string                     `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_guest_event_token" json:"event_id"`
	FirstName   string                     `json:"first_name"`
	LastName    string                     `gorm:"index" json:"last_name"`
	Email       string                     `json:"email,omitempty"`
	Phone       string                     `json:"phone,omitempty"`
	BirthDate   *time.Time                 `json:"birth_date,omitempty"`
	Address     string                     `json:"address,omitempty"`
	TaxCode     string                     `json:"tax_code,omitempty"`
	School      string                     `json:"school,omitempty"`
	Class       string                     `json:"class,omitempty"`
	InvitedBy   string                     `gorm:"type:varchar(36)" json:"invited_by"`
	Token       string                     `gorm:"type:varchar(36);not null;uniqueIndex:idx_guest_event_token" json:"token"`
	Status      GuestStatus                `gorm:"type:varchar(16);not null;default:invited" json:"status"`
	Note        string                     `json:"note,omitempty"`
	Orders      datatypes.JSONSlice[Order] `json:"orders"`
	CheckedInAt *time.Time                 `json:"checked_in_at,omitempty"`
}
