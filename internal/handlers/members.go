package handlers

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/access"
	"github.com/gdg-garage/fester-api/internal/auth"
	"github.com/gdg-garage/fester-api/internal/models"
	log "github.com/sirupsen/logrus"
)

type ListMembersOutput struct {
	Body []models.EventMembership
}

func (h *EventHandler) HandleListMembers(ctx context.Context, input *EventPathInput) (*ListMembersOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if _, _, err := loadAccess(ctx, h.store, h.logger, input.ID, userID); err != nil {
		return nil, err
	}

	members, err := h.store.Memberships(ctx, input.ID)
	if err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}
	return &ListMembersOutput{Body: members}, nil
}

type AddMemberInput struct {
	auth.AuthInput
	ID   string `path:"eventId" doc:"Event id"`
	Body struct {
		UserID string `json:"user_id" doc:"User to add"`
		Role   string `json:"role" doc:"Role on this event: staff or guest"`
	}
}

type MemberOutput struct {
	Body models.EventMembership
}

func (h *EventHandler) HandleAddMember(ctx context.Context, input *AddMemberInput) (*MemberOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	event, decision, err := loadAccess(ctx, h.store, h.logger, input.ID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanModify(decision) {
		return nil, huma.Error403Forbidden("Only the organizer can add members")
	}

	role := models.Role(input.Body.Role)
	if !access.ValidMemberRole(role) {
		return nil, huma.Error400BadRequest("Role must be staff or guest")
	}
	memberID := strings.TrimSpace(input.Body.UserID)
	if memberID == "" {
		return nil, huma.Error400BadRequest("user_id is required")
	}
	if _, err := h.store.UserByID(ctx, memberID); err != nil {
		return nil, storeError(h.logger, err, "User not found")
	}

	membership := models.EventMembership{EventID: event.ID, UserID: memberID, Role: role}
	if err := h.store.AddMembership(ctx, &membership); err != nil {
		return nil, storeError(h.logger, err, "Event not found")
	}

	h.logger.WithFields(log.Fields{"event_id": event.ID, "member_id": memberID, "role": role}).Info("member added")
	return &MemberOutput{Body: membership}, nil
}
