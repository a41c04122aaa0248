package models

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleStaff     Role = "staff"
	RoleGuest     Role = "guest"
	RoleNone      Role = "none"
)

// EventMembership links a user to an event. The organizer row is written in
// the same transaction as the event itself.
type EventMembership struct {
	Base
	EventID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_event_user;index" json:"user_id"`
	Role    Role   `gorm:"type:varchar(16);not null" json:"role"`
}

func (EventMembership) TableName() string {
	return "event_users"
}
