package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/access"
	"github.com/gdg-garage/fester-api/internal/models"
	"github.com/gdg-garage/fester-api/internal/store"
	log "github.com/sirupsen/logrus"
)

// loadAccess fetches the event and the caller's membership, then asks the
// access policy. A denied caller gets 403.
func loadAccess(ctx context.Context, s store.Store, logger *log.Logger, eventID, userID string) (*models.Event, access.Decision, error) {
	event, err := s.Event(ctx, eventID)
	if err != nil {
		return nil, access.Decision{}, storeError(logger, err, "Event not found")
	}

	membership, err := s.Membership(ctx, eventID, userID)
	if err != nil {
		return nil, access.Decision{}, storeError(logger, err, "Event not found")
	}

	decision := access.CanAccess(event, membership, userID)
	if !decision.Allowed {
		return nil, decision, huma.Error403Forbidden("You do not have access to this event")
	}
	return event, decision, nil
}
