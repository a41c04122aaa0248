package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gdg-garage/fester-api/internal/models"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate("create user", s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate("load user", err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate("load user", err)
	}
	return &user, nil
}

func (s *GormStore) UpsertDiscordUser(ctx context.Context, discordID string, apply func(*models.User)) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discord_id = ?", discordID).FirstOrInit(&user).Error; err != nil {
			return err
		}
		id := discordID
		user.DiscordID = &id
		apply(&user)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, translate("save discord user", err)
	}
	return &user, nil
}

func (s *GormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Create(&models.EventMembership{
			EventID: event.ID,
			UserID:  event.CreatedBy,
			Role:    models.RoleOrganizer,
		}).Error
	})
	return translate("create event", err)
}

func (s *GormStore) Event(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translate("load event", err)
	}
	return &event, nil
}

// EventsForUser merges the events userID created with those they are a
// member of. A created event is reported once, as organizer.
func (s *GormStore) EventsForUser(ctx context.Context, userID string) ([]EventWithRole, error) {
	db := s.db.WithContext(ctx)

	var created []models.Event
	if err := db.Where("created_by = ?", userID).Find(&created).Error; err != nil {
		return nil, translate("list created events", err)
	}

	var memberships []models.EventMembership
	if err := db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, translate("list memberships", err)
	}

	result := make([]EventWithRole, 0, len(created)+len(memberships))
	seen := make(map[string]struct{}, len(created))
	for _, e := range created {
		seen[e.ID] = struct{}{}
		result = append(result, EventWithRole{Event: e, Role: models.RoleOrganizer})
	}

	roles := make(map[string]models.Role, len(memberships))
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		if _, ok := seen[m.EventID]; ok {
			continue
		}
		roles[m.EventID] = m.Role
		ids = append(ids, m.EventID)
	}

	if len(ids) > 0 {
		var shared []models.Event
		if err := db.Where("id IN ?", ids).Find(&shared).Error; err != nil {
			return nil, translate("list shared events", err)
		}
		for _, e := range shared {
			result = append(result, EventWithRole{Event: e, Role: roles[e.ID]})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartsAt.After(result[j].StartsAt)
	})
	return result, nil
}

func (s *GormStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = s.db.NowFunc()
	res := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", event.ID).
		Select("name", "place", "starts_at", "rules", "state", "updated_at").
		Updates(event)
	if res.Error != nil {
		return translate("update event", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetEventState(ctx context.Context, id string, state models.EventState) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Update("state", state)
	if res.Error != nil {
		return translate("update event state", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Membership(ctx context.Context, eventID, userID string) (*models.EventMembership, error) {
	var memberships []models.EventMembership
	err := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Limit(1).
		Find(&memberships).Error
	if err != nil {
		return nil, translate("load membership", err)
	}
	if len(memberships) == 0 {
		return nil, nil
	}
	return &memberships[0], nil
}

func (s *GormStore) Memberships(ctx context.Context, eventID string) ([]models.EventMembership, error) {
	var memberships []models.EventMembership
	if err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at asc").Find(&memberships).Error; err != nil {
		return nil, translate("list memberships", err)
	}
	return memberships, nil
}

func (s *GormStore) AddMembership(ctx context.Context, membership *models.EventMembership) error {
	existing, err := s.Membership(ctx, membership.EventID, membership.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("add membership: %w", ErrConflict)
	}
	return translate("add membership", s.db.WithContext(ctx).Create(membership).Error)
}

func (s *GormStore) Guests(ctx context.Context, eventID string) ([]models.Guest, error) {
	var guests []models.Guest
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("last_name asc").
		Order("first_name asc").
		Find(&guests).Error
	if err != nil {
		return nil, translate("list guests", err)
	}
	return guests, nil
}

func (s *GormStore) GuestStatuses(ctx context.Context, eventID string) ([]models.GuestStatus, error) {
	var statuses []models.GuestStatus
	if err := s.db.WithContext(ctx).Model(&models.Guest{}).Where("event_id = ?", eventID).Pluck("status", &statuses).Error; err != nil {
		return nil, translate("list guest statuses", err)
	}
	return statuses, nil
}

func (s *GormStore) CreateGuests(ctx context.Context, guests []*models.Guest) error {
	if len(guests) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(guests).Error
	})
	return translate("create guests", err)
}

func (s *GormStore) Guest(ctx context.Context, eventID, guestID string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.WithContext(ctx).Where("id = ? AND event_id = ?", guestID, eventID).First(&guest).Error; err != nil {
		return nil, translate("load guest", err)
	}
	return &guest, nil
}

// GuestByToken only matches within eventID, so a token from another event
// is reported as not found.
func (s *GormStore) GuestByToken(ctx context.Context, eventID, token string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.WithContext(ctx).Where("event_id = ? AND token = ?", eventID, token).First(&guest).Error; err != nil {
		return nil, translate("load guest by token", err)
	}
	return &guest, nil
}

func (s *GormStore) UpdateGuest(ctx context.Context, guest *models.Guest) error {
	guest.UpdatedAt = s.db.NowFunc()
	res := s.db.WithContext(ctx).Model(&models.Guest{}).
		Where("id = ? AND event_id = ?", guest.ID, guest.EventID).
		Select("status", "note", "checked_in_at", "updated_at").
		Updates(guest)
	if res.Error != nil {
		return translate("update guest", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
