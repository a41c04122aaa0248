package models

import "time"

type EventState string

const (
	EventStateDraft     EventState = "draft"
	EventStateActive    EventState = "active"
	EventStateCancelled EventState = "cancelled"
)

func (s EventState) Valid() bool {
	switch s {
	case EventStateDraft, EventStateActive, EventStateCancelled:
		return true
	}
	return false
}

type Event struct {
	Base
	Name      string     `gorm:"not null" json:"name"`
	Place     string     `json:"place"`
	StartsAt  time.Time  `gorm:"index" json:"starts_at"`
	Rules     string     `json:"rules"`
	State     EventState `gorm:"type:varchar(16);not null;default:draft" json:"state"`
	CreatedBy string     `gorm:"type:varchar(36);not null;index" json:"created_by"`
}
