package lifecycle

import (
	"errors"
	"testing"

	"github.com/gdg-garage/fester-api/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"invited", "confirmed", "present"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, s := range []string{"", "Present", "attending", "presente"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", s, err)
		}
	}
}

func TestSetStatus(t *testing.T) {
	t.Run("AnyOrderAllowed", func(t *testing.T) {
		got, err := SetStatus(models.GuestStatusPresent, "invited")
		if err != nil {
			t.Fatalf("SetStatus returned error: %v", err)
		}
		if got != models.GuestStatusInvited {
			t.Errorf("expected invited, got %s", got)
		}
	})

	t.Run("RejectsUnknown", func(t *testing.T) {
		got, err := SetStatus(models.GuestStatusConfirmed, "gone")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
		if got != models.GuestStatusConfirmed {
			t.Errorf("expected status to stay confirmed, got %s", got)
		}
	})
}

func TestCheckIn_AlwaysPresent(t *testing.T) {
	if got := CheckIn(); got != models.GuestStatusPresent {
		t.Errorf("expected present, got %s", got)
	}
}

func TestTally(t *testing.T) {
	statuses := []models.GuestStatus{
		models.GuestStatusInvited, models.GuestStatusInvited,
		models.GuestStatusConfirmed,
		models.GuestStatusPresent, models.GuestStatusPresent, models.GuestStatusPresent,
	}
	want := Stats{Total: 6, Invited: 2, Confirmed: 1, Present: 3}
	if got := Tally(statuses); got != want {
		t.Errorf("Tally() = %+v, want %+v", got, want)
	}

	if got := Tally(nil); got != (Stats{}) {
		t.Errorf("Tally(nil) = %+v, want zero", got)
	}
}
