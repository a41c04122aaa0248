package handlers

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/access"
	"github.com/gdg-garage/fester-api/internal/auth"
	"github.com/gdg-garage/fester-api/internal/lifecycle"
	"github.com/gdg-garage/fester-api/internal/models"
	"github.com/gdg-garage/fester-api/internal/notifier"
	"github.com/gdg-garage/fester-api/internal/store"
	log "github.com/sirupsen/logrus"
)

type EventHandler struct {
	store       store.Store
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	logger      *log.Logger
}

func NewEventHandler(s store.Store, n notifier.Notifier, authHandler *auth.AuthHandler, logger *log.Logger) *EventHandler {
	return &EventHandler{store: s, notifier: n, authHandler: authHandler, logger: logger}
}

type EventResponse struct {
	models.Event
	Role  models.Role      `json:"role"`
	Stats *lifecycle.Stats `json:"stats,omitempty"`
}

type ListEventsOutput struct {
	Body []store.EventWithRole
}

func (h *EventHandler) HandleList(ctx context.Context, input *auth.AuthInput) (*ListEventsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	events, err := h.store.EventsForUser(ctx, userID)
	if err != nil {
		return nil, storeError(h.logger, err, "Events not found")
	}
	return &ListEventsOutput{Body: events}, nil
}

type CreateEventInput struct {
	auth.AuthInput
	Body struct {
		Name     string `json:"name" minLength:"1" doc:"Event name"`
		Place    string `json:"place,omitempty" doc:"Where the event takes place"`
		StartsAt string `json:"starts_at" doc:"Scheduled date-time, RFC 3339"`
		Rules    string `json:"rules,omitempty" doc:"Free-text rules for guests"`
		State    string `json:"state,omitempty" doc:"Initial state: draft or active, draft when omitted"`
	}
}

type EventOutput struct {
	Body EventResponse
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventInput) (*EventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Body.Name)
	if name == "" {
		return nil, huma.Error400BadRequest("Event name is required")
	}
	startsAt, err := parseTime("starts_at", input.Body.StartsAt)
	if err != nil {
		return nil, err
	}

	state := models.EventStateDraft
	if input.Body.State != "" {
		state = models.EventState(input.Body.State)
		if state != models.EventStateDraft && state != models.EventStateActive {
			return nil, huma.Error400BadRequest("A new event must be draft or active")
		}
	}

	event := models.Event{
		Name:      name,
		Place:     input.Body.Place,
		StartsAt:  startsAt,
		Rules:     input.Body.Rules,
		State:     state,
		CreatedBy: userID,
	}
	if err := h.store.CreateEvent(ctx, &event); err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}

	h.logger.WithFields(log.Fields{"event_id": event.ID, "user_id": userID}).Info("event created")
	if err := h.notifier.NotifyEventCreated(event); err != nil {
		h.logger.WithError(err).WithField("event_id", event.ID).Warn("event notification failed")
	}

	return &EventOutput{Body: EventResponse{Event: event, Role: models.RoleOrganizer}}, nil
}

type EventPathInput struct {
	auth.AuthInput
	ID string `path:"eventId" doc:"Event id"`
}

func (h *EventHandler) HandleGet(ctx context.Context, input *EventPathInput) (*EventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	event, decision, err := loadAccess(ctx, h.store, h.logger, input.ID, userID)
	if err != nil {
		return nil, err
	}

	res := EventResponse{Event: *event, Role: decision.Role}
	if access.CanViewStats(decision) {
		statuses, err := h.store.GuestStatuses(ctx, event.ID)
		if err != nil {
			return nil, storeError(h.logger, err, "Event not found")
		}
		stats := lifecycle.Tally(statuses)
		res.Stats = &stats
	}
	return &EventOutput{Body: res}, nil
}

type UpdateEventInput struct {
	auth.AuthInput
	ID   string `path:"eventId" doc:"Event id"`
	Body struct {
		Name     *string `json:"name,omitempty"`
		Place    *string `json:"place,omitempty"`
		StartsAt *string `json:"starts_at,omitempty" doc:"RFC 3339 date-time"`
		Rules    *string `json:"rules,omitempty"`
		State    *string `json:"state,omitempty" doc:"draft, active or cancelled"`
	}
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventInput) (*EventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	event, decision, err := loadAccess(ctx, h.store, h.logger, input.ID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(decision) {
		return nil, huma.Error403Forbidden("Only the organizer can modify the event")
	}

	if input.Body.Name != nil {
		name := strings.TrimSpace(*input.Body.Name)
		if name == "" {
			return nil, huma.Error400BadRequest("Event name cannot be empty")
		}
		event.Name = name
	}
	if input.Body.Place != nil {
		event.Place = *input.Body.Place
	}
	if input.Body.StartsAt != nil {
		startsAt, err := parseTime("starts_at", *input.Body.StartsAt)
		if err != nil {
			return nil, err
		}
		event.StartsAt = startsAt
	}
	if input.Body.Rules != nil {
		event.Rules = *input.Body.Rules
	}
	if input.Body.State != nil {
		state := models.EventState(*input.Body.State)
		if !state.Valid() {
			return nil, huma.Error400BadRequest("Invalid event state")
		}
		if state == models.EventStateCancelled && !access.CanCancel(event, userID) {
			return nil, huma.Error403Forbidden("Only the creator can cancel the event")
		}
		event.State = state
	}

	if err := h.store.UpdateEvent(ctx, event); err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}
	return &EventOutput{Body: EventResponse{Event: *event, Role: decision.Role}}, nil
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleCancel soft-deletes the event by moving it to cancelled.
func (h *EventHandler) HandleCancel(ctx context.Context, input *EventPathInput) (*MessageOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	event, err := h.store.Event(ctx, input.ID)
	if err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}
	if !access.CanCancel(event, userID) {
		return nil, huma.Error403Forbidden("Only the creator can cancel the event")
	}

	if err := h.store.SetEventState(ctx, event.ID, models.EventStateCancelled); err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}

	h.logger.WithFields(log.Fields{"event_id": event.ID, "user_id": userID}).Info("event cancelled")
	res := &MessageOutput{}
	res.Body.Message = "Event cancelled"
	return res, nil
}
