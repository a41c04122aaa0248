package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/auth"
	"github.com/gdg-garage/fester-api/internal/config"
	"github.com/gdg-garage/fester-api/internal/logging"
	"github.com/gdg-garage/fester-api/internal/models"
	"github.com/gdg-garage/fester-api/internal/store"
	"github.com/gdg-garage/fester-api/internal/testutil"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	created  []models.Event
	checkIns []models.Guest
}

func (n *recordingNotifier) NotifyEventCreated(event models.Event) error {
	n.created = append(n.created, event)
	return nil
}

func (n *recordingNotifier) NotifyCheckIn(event models.Event, guest models.Guest) error {
	n.checkIns = append(n.checkIns, guest)
	return nil
}

type testEnv struct {
	db       *gorm.DB
	store    store.Store
	auth     *auth.AuthHandler
	events   *EventHandler
	guests   *GuestHandler
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	s := store.NewGormStore(db)
	logger := logging.Discard()
	authHandler := auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}, s, logger)
	n := &recordingNotifier{}
	return &testEnv{
		db:       db,
		store:    s,
		auth:     authHandler,
		events:   NewEventHandler(s, n, authHandler, logger),
		guests:   NewGuestHandler(s, n, authHandler, logger),
		notifier: n,
	}
}

// user creates a user and returns its id and Authorization header value.
func (e *testEnv) user(t *testing.T, name string) (string, string) {
	t.Helper()
	u := models.User{FirstName: name}
	if err := e.store.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := e.auth.GenerateToken(u.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return u.ID, "Bearer " + token
}

func (e *testEnv) createEvent(t *testing.T, authz, state string) models.Event {
	t.Helper()
	in := &CreateEventInput{}
	in.Authorization = authz
	in.Body.Name = "Festa"
	in.Body.Place = "Roma"
	in.Body.StartsAt = "2026-12-31T21:00:00Z"
	in.Body.State = state
	out, err := e.events.HandleCreate(context.Background(), in)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	return out.Body.Event
}

func (e *testEnv) addGuest(t *testing.T, authz, eventID, lastName string) models.Guest {
	t.Helper()
	in := &AddGuestInput{EventID: eventID}
	in.Authorization = authz
	in.Body.FirstName = "Guest"
	in.Body.LastName = lastName
	out, err := e.guests.HandleAdd(context.Background(), in)
	if err != nil {
		t.Fatalf("HandleAdd returned error: %v", err)
	}
	return out.Body
}

func statusOf(err error) int {
	var se huma.StatusError
	if errors.As(err, &se) {
		return se.GetStatus()
	}
	return 0
}
