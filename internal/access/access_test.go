package access

import (
	"testing"

	"github.com/gdg-garage/fester-api/internal/models"
)

func newEvent(state models.EventState) *models.Event {
	e := &models.Event{State: state, CreatedBy: "creator"}
	e.ID = "event-1"
	return e
}

func newMembership(userID string, role models.Role) *models.EventMembership {
	return &models.EventMembership{EventID: "event-1", UserID: userID, Role: role}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name       string
		state      models.EventState
		membership *models.EventMembership
		userID     string
		want       Decision
	}{
		{"active non-member defaults to guest", models.EventStateActive, nil, "stranger", Decision{true, models.RoleGuest}},
		{"active member keeps stored role", models.EventStateActive, newMembership("staffer", models.RoleStaff), "staffer", Decision{true, models.RoleStaff}},
		{"active creator is organizer", models.EventStateActive, nil, "creator", Decision{true, models.RoleOrganizer}},
		{"draft creator is organizer", models.EventStateDraft, nil, "creator", Decision{true, models.RoleOrganizer}},
		{"draft member keeps stored role", models.EventStateDraft, newMembership("staffer", models.RoleStaff), "staffer", Decision{true, models.RoleStaff}},
		{"draft non-member denied", models.EventStateDraft, nil, "stranger", Decision{false, models.RoleNone}},
		{"cancelled non-member denied", models.EventStateCancelled, nil, "stranger", Decision{false, models.RoleNone}},
		{"cancelled guest member allowed", models.EventStateCancelled, newMembership("g", models.RoleGuest), "g", Decision{true, models.RoleGuest}},
		{"membership of another user ignored", models.EventStateDraft, newMembership("someone-else", models.RoleStaff), "stranger", Decision{false, models.RoleNone}},
		{"unauthenticated denied even when active", models.EventStateActive, nil, "", Decision{false, models.RoleNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccess(newEvent(tt.state), tt.membership, tt.userID)
			if got != tt.want {
				t.Errorf("CanAccess() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCanAccess_NilEvent(t *testing.T) {
	if got := CanAccess(nil, nil, "creator"); got.Allowed {
		t.Errorf("expected denial for nil event, got %+v", got)
	}
}

func TestCanAccess_DraftThenActive(t *testing.T) {
	event := newEvent(models.EventStateDraft)

	if d := CanAccess(event, nil, "stranger"); d.Allowed {
		t.Fatalf("expected stranger to be denied on draft event, got %+v", d)
	}

	event.State = models.EventStateActive
	d := CanAccess(event, nil, "stranger")
	if !d.Allowed || d.Role != models.RoleGuest {
		t.Errorf("expected guest access once active, got %+v", d)
	}
}

func TestCanModify(t *testing.T) {
	for _, role := range []models.Role{models.RoleStaff, models.RoleGuest, models.RoleNone} {
		if CanModify(Decision{Allowed: true, Role: role}) {
			t.Errorf("role %s must not modify", role)
		}
	}
	if !CanModify(Decision{Allowed: true, Role: models.RoleOrganizer}) {
		t.Error("organizer must modify")
	}
	if CanModify(Decision{Allowed: false, Role: models.RoleOrganizer}) {
		t.Error("denied decision must not modify")
	}
}

func TestCanCancel(t *testing.T) {
	event := newEvent(models.EventStateActive)
	if !CanCancel(event, "creator") {
		t.Error("creator must be able to cancel")
	}
	if CanCancel(event, "staffer") {
		t.Error("non-creator must not cancel")
	}
	if CanCancel(nil, "creator") {
		t.Error("nil event must not be cancellable")
	}
}

func TestCanViewStats(t *testing.T) {
	if !CanViewStats(Decision{true, models.RoleOrganizer}) || !CanViewStats(Decision{true, models.RoleStaff}) {
		t.Error("organizer and staff see stats")
	}
	if CanViewStats(Decision{true, models.RoleGuest}) {
		t.Error("guest must not see stats")
	}
}
