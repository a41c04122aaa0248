// Package access decides who may read or change an event.
//
// Every function here is a pure decision over rows the caller already
// fetched. None of them fail: callers turn a denied Decision into a
// forbidden response.
package access

import "github.com/gdg-garage/fester-api/internal/models"

type Decision struct {
	Allowed bool        `json:"allowed"`
	Role    models.Role `json:"role"`
}

var denied = Decision{Allowed: false, Role: models.RoleNone}

// CanAccess resolves the caller's access to event. membership may be nil
// when the caller has no row in event_users.
//
// Precedence: an active event is open to any authenticated user; otherwise
// the creator is let in as organizer, then any member with their stored
// role. Everyone else is denied.
func CanAccess(event *models.Event, membership *models.EventMembership, userID string) Decision {
	if event == nil || userID == "" {
		return denied
	}

	isCreator := event.CreatedBy == userID
	hasMembership := membership != nil && membership.EventID == event.ID && membership.UserID == userID

	if event.State == models.EventStateActive {
		switch {
		case hasMembership:
			return Decision{Allowed: true, Role: membership.Role}
		case isCreator:
			return Decision{Allowed: true, Role: models.RoleOrganizer}
		default:
			return Decision{Allowed: true, Role: models.RoleGuest}
		}
	}

	if isCreator {
		return Decision{Allowed: true, Role: models.RoleOrganizer}
	}
	if hasMembership {
		return Decision{Allowed: true, Role: membership.Role}
	}
	return denied
}

// CanModify reports whether the decision permits editing event fields or
// changing its lifecycle state.
func CanModify(d Decision) bool {
	return d.Allowed && d.Role == models.RoleOrganizer
}

// CanCancel reports whether userID may soft-cancel event. Only the creator
// can, even if other users hold an organizer membership.
func CanCancel(event *models.Event, userID string) bool {
	return event != nil && userID != "" && event.CreatedBy == userID
}

// CanViewStats reports whether the decision exposes guest counts.
func CanViewStats(d Decision) bool {
	return d.Allowed && (d.Role == models.RoleOrganizer || d.Role == models.RoleStaff)
}

// ValidMemberRole reports whether role may be granted through the members
// endpoint. Organizer is reserved for the creator.
func ValidMemberRole(role models.Role) bool {
	return role == models.RoleStaff || role == models.RoleGuest
}
