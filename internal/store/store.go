// Package store is the row store the handlers talk to. Handlers depend on
// the Store interface; GormStore backs it with sqlite or Postgres.
package store

import (
	"context"
	"errors"

	"github.com/gdg-garage/fester-api/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// EventWithRole is an event as seen by one user.
type EventWithRole struct {
	models.Event
	Role models.Role `json:"role"`
}

type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertDiscordUser(ctx context.Context, discordID string, apply func(*models.User)) (*models.User, error)

	// CreateEvent inserts event and the creator's organizer membership
	// atomically.
	CreateEvent(ctx context.Context, event *models.Event) error
	Event(ctx context.Context, id string) (*models.Event, error)
	EventsForUser(ctx context.Context, userID string) ([]EventWithRole, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	SetEventState(ctx context.Context, id string, state models.EventState) error

	// Membership returns nil, nil when userID has no row for eventID.
	Membership(ctx context.Context, eventID, userID string) (*models.EventMembership, error)
	Memberships(ctx context.Context, eventID string) ([]models.EventMembership, error)
	AddMembership(ctx context.Context, membership *models.EventMembership) error

	Guests(ctx context.Context, eventID string) ([]models.Guest, error)
	GuestStatuses(ctx context.Context, eventID string) ([]models.GuestStatus, error)
	CreateGuests(ctx context.Context, guests []*models.Guest) error
	Guest(ctx context.Context, eventID, guestID string) (*models.Guest, error)
	GuestByToken(ctx context.Context, eventID, token string) (*models.Guest, error)
	UpdateGuest(ctx context.Context, guest *models.Guest) error
}
