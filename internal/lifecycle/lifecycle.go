// Package lifecycle holds the guest status rules and read-time statistics.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/gdg-garage/fester-api/internal/models"
)

var ErrInvalidStatus = errors.New("invalid guest status")

// ParseStatus accepts only invited, confirmed or present.
func ParseStatus(s string) (models.GuestStatus, error) {
	status := models.GuestStatus(s)
	switch status {
	case models.GuestStatusInvited, models.GuestStatusConfirmed, models.GuestStatusPresent:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// SetStatus overwrites current with requested. Any legal status may follow
// any other, including moving a present guest back to invited.
func SetStatus(current models.GuestStatus, requested string) (models.GuestStatus, error) {
	next, err := ParseStatus(requested)
	if err != nil {
		return current, err
	}
	return next, nil
}

// CheckIn returns the status after a successful token scan. Every guest,
// present or not, ends up present.
func CheckIn() models.GuestStatus {
	return models.GuestStatusPresent
}

type Stats struct {
	Total     int `json:"total"`
	Invited   int `json:"invited"`
	Confirmed int `json:"confirmed"`
	Present   int `json:"present"`
}

// Tally counts statuses in a single pass. Unknown values only add to Total.
func Tally(statuses []models.GuestStatus) Stats {
	s := Stats{Total: len(statuses)}
	for _, st := range statuses {
		switch st {
		case models.GuestStatusInvited:
			s.Invited++
		case models.GuestStatusConfirmed:
			s.Confirmed++
		case models.GuestStatusPresent:
			s.Present++
		}
	}
	return s
}
