package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/auth"
	"github.com/gdg-garage/fester-api/internal/lifecycle"
	"github.com/gdg-garage/fester-api/internal/models"
	"github.com/gdg-garage/fester-api/internal/notifier"
	"github.com/gdg-garage/fester-api/internal/store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type GuestHandler struct {
	store       store.Store
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	logger      *log.Logger
	now         func() time.Time
}

func NewGuestHandler(s store.Store, n notifier.Notifier, authHandler *auth.AuthHandler, logger *log.Logger) *GuestHandler {
	return &GuestHandler{store: s, notifier: n, authHandler: authHandler, logger: logger, now: time.Now}
}

type GuestFields struct {
	FirstName string         `json:"first_name" doc:"First name"`
	LastName  string         `json:"last_name" doc:"Last name"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	BirthDate string         `json:"birth_date,omitempty" doc:"YYYY-MM-DD"`
	Address   string         `json:"address,omitempty"`
	TaxCode   string         `json:"tax_code,omitempty"`
	School    string         `json:"school,omitempty"`
	Class     string         `json:"class,omitempty"`
	Note      string         `json:"note,omitempty"`
	Orders    []models.Order `json:"orders,omitempty"`
}

// newGuest builds an invited guest with a fresh check-in token.
func newGuest(eventID, invitedBy string, f GuestFields) (*models.Guest, error) {
	if strings.TrimSpace(f.FirstName) == "" && strings.TrimSpace(f.LastName) == "" {
		return nil, huma.Error400BadRequest("Guest first_name or last_name is required")
	}

	guest := &models.Guest{
		EventID:   eventID,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		TaxCode:   f.TaxCode,
		School:    f.School,
		Class:     f.Class,
		Note:      f.Note,
		InvitedBy: invitedBy,
		Token:     uuid.NewString(),
		Status:    models.GuestStatusInvited,
		Orders:    f.Orders,
	}
	if guest.Orders == nil {
		guest.Orders = []models.Order{}
	}
	if f.BirthDate != "" {
		birthDate, err := parseTime("birth_date", f.BirthDate)
		if err != nil {
			return nil, err
		}
		guest.BirthDate = &birthDate
	}
	return guest, nil
}

type EventGuestsInput struct {
	auth.AuthInput
	EventID string `path:"eventId" doc:"Event id"`
}

type ListGuestsOutput struct {
	Body []models.Guest
}

func (h *GuestHandler) HandleList(ctx context.Context, input *EventGuestsInput) (*ListGuestsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if _, _, err := loadAccess(ctx, h.store, h.logger, input.EventID, userID); err != nil {
		return nil, err
	}

	guests, err := h.store.Guests(ctx, input.EventID)
	if err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}
	return &ListGuestsOutput{Body: guests}, nil
}

type AddGuestInput struct {
	auth.AuthInput
	EventID string `path:"eventId" doc:"Event id"`
	Body    GuestFields
}

type GuestOutput struct {
	Body models.Guest
}

func (h *GuestHandler) HandleAdd(ctx context.Context, input *AddGuestInput) (*GuestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	event, _, err := loadAccess(ctx, h.store, h.logger, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	guest, err := newGuest(event.ID, userID, input.Body)
	if err != nil {
		return nil, err
	}
	if err := h.store.CreateGuests(ctx, []*models.Guest{guest}); err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}
	return &GuestOutput{Body: *guest}, nil
}

type ImportGuestsInput struct {
	auth.AuthInput
	EventID string `path:"eventId" doc:"Event id"`
	Body    struct {
		Guests []GuestFields `json:"guests" doc:"Guests to invite"`
	}
}

type ImportGuestsOutput struct {
	Body struct {
		Imported int            `json:"imported"`
		Guests   []models.Guest `json:"guests"`
	}
}

// HandleImport inserts every guest or none of them.
func (h *GuestHandler) HandleImport(ctx context.Context, input *ImportGuestsInput) (*ImportGuestsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	event, _, err := loadAccess(ctx, h.store, h.logger, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	if len(input.Body.Guests) == 0 {
		return nil, huma.Error400BadRequest("guests must be a non-empty list")
	}

	guests := make([]*models.Guest, 0, len(input.Body.Guests))
	for _, f := range input.Body.Guests {
		guest, err := newGuest(event.ID, userID, f)
		if err != nil {
			return nil, err
		}
		guests = append(guests, guest)
	}

	if err := h.store.CreateGuests(ctx, guests); err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}

	h.logger.WithFields(log.Fields{"event_id": event.ID, "count": len(guests)}).Info("guests imported")
	res := &ImportGuestsOutput{}
	res.Body.Imported = len(guests)
	res.Body.Guests = make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		res.Body.Guests = append(res.Body.Guests, *g)
	}
	return res, nil
}

type UpdateGuestInput struct {
	auth.AuthInput
	EventID string `path:"eventId" doc:"Event id"`
	GuestID string `path:"guestId" doc:"Guest id"`
	Body    struct {
		Status string `json:"status,omitempty" doc:"New status: invited, confirmed or present"`
		Note   string `json:"note,omitempty" doc:"Replaces the note when not empty"`
	}
}

// HandleUpdate overwrites the status with any legal value. An empty note
// keeps the existing one.
func (h *GuestHandler) HandleUpdate(ctx context.Context, input *UpdateGuestInput) (*GuestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	if _, _, err := loadAccess(ctx, h.store, h.logger, input.EventID, userID); err != nil {
		return nil, err
	}

	guest, err := h.store.Guest(ctx, input.EventID, input.GuestID)
	if err != nil {
		return nil, storeError(h.logger, err, "Guest not found")
	}

	if input.Body.Status != "" {
		status, err := lifecycle.SetStatus(guest.Status, input.Body.Status)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		switch {
		case status != models.GuestStatusPresent:
			guest.CheckedInAt = nil
		case guest.Status != models.GuestStatusPresent:
			now := h.now().UTC()
			guest.CheckedInAt = &now
		}
		guest.Status = status
	}
	if input.Body.Note != "" {
		guest.Note = input.Body.Note
	}

	if err := h.store.UpdateGuest(ctx, guest); err != nil {
		return nil, storeError(h.logger, err, "Guest not found")
	}
	return &GuestOutput{Body: *guest}, nil
}

type CheckInInput struct {
	auth.AuthInput
	EventID string `path:"eventId" doc:"Event id"`
	Body    struct {
		Token string `json:"token" minLength:"1" doc:"Token read from the guest's QR code"`
	}
}

// HandleCheckIn marks the guest holding token as present. The lookup is
// scoped to the event in the path, so a token from another event is not
// found. Checking in twice is not an error.
func (h *GuestHandler) HandleCheckIn(ctx context.Context, input *CheckInInput) (*GuestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	event, _, err := loadAccess(ctx, h.store, h.logger, input.EventID, userID)
	if err != nil {
		return nil, err
	}

	token := strings.TrimSpace(input.Body.Token)
	if token == "" {
		return nil, huma.Error400BadRequest("token is required")
	}

	guest, err := h.store.GuestByToken(ctx, event.ID, token)
	if err != nil {
		return nil, storeError(h.logger, err, "Invalid QR code or guest not found")
	}

	if guest.Status == models.GuestStatusPresent {
		return &GuestOutput{Body: *guest}, nil
	}

	now := h.now().UTC()
	guest.Status = lifecycle.CheckIn()
	guest.CheckedInAt = &now
	if err := h.store.UpdateGuest(ctx, guest); err != nil {
		return nil, storeError(h.logger, err, "Guest not found")
	}

	h.logger.WithFields(log.Fields{"event_id": event.ID, "guest_id": guest.ID, "by": userID}).Info("guest checked in")
	if err := h.notifier.NotifyCheckIn(*event, *guest); err != nil {
		h.logger.WithError(err).WithField("guest_id", guest.ID).Warn("check-in notification failed")
	}
	return &GuestOutput{Body: *guest}, nil
}
