package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/models"
)

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
}

type DiscordCallbackRequest struct {
	Code  string `query:"code" doc:"OAuth authorization code"`
	State string `query:"state" doc:"Signed state issued by the login redirect"`
}

func (h *AuthHandler) HandleDiscordCallback(ctx context.Context, input *DiscordCallbackRequest) (*SessionResponse, error) {
	if !h.cfg.DiscordOAuthEnabled() {
		return nil, huma.Error404NotFound("Discord login is not configured")
	}
	if input.Code == "" {
		return nil, huma.Error400BadRequest("Code not found")
	}
	if err := h.verifyState(input.State); err != nil {
		return nil, huma.Error400BadRequest("Invalid OAuth state")
	}

	token, err := h.oauthConfig.Exchange(ctx, input.Code)
	if err != nil {
		h.logger.WithError(err).Warn("discord token exchange failed")
		return nil, huma.Error502BadGateway("Failed to exchange token")
	}
	client := h.oauthConfig.Client(ctx, token)

	if h.cfg.DiscordGuildID != "" {
		isMember, err := h.inGuild(client, h.cfg.DiscordGuildID)
		if err != nil {
			return nil, huma.Error502BadGateway("Failed to get user guilds")
		}
		if !isMember {
			return nil, huma.Error403Forbidden("Access denied: You are not a member of the required guild.")
		}
	}

	var du discordUser
	if err := getJSON(client, h.userAPI, &du); err != nil {
		return nil, huma.Error502BadGateway("Failed to get user info")
	}
	if du.ID == "" {
		return nil, huma.Error502BadGateway("Discord returned no user id")
	}

	user, err := h.store.UpsertDiscordUser(ctx, du.ID, func(u *models.User) {
		if u.FirstName == "" {
			u.FirstName = du.GlobalName
			if u.FirstName == "" {
				u.FirstName = du.Username
			}
		}
		if u.Email == nil && du.Email != "" {
			email := strings.ToLower(du.Email)
			u.Email = &email
		}
		u.Avatar = du.Avatar
	})
	if err != nil {
		h.logger.WithError(err).WithField("discord_id", du.ID).Error("save discord user failed")
		return nil, huma.Error502BadGateway("Failed to save user")
	}

	return h.newSession(user)
}

func (h *AuthHandler) inGuild(client *http.Client, guildID string) (bool, error) {
	var guilds []struct {
		ID string `json:"id"`
	}
	if err := getJSON(client, h.guildsAPI, &guilds); err != nil {
		return false, err
	}
	for _, g := range guilds {
		if g.ID == guildID {
			return true, nil
		}
	}
	return false, nil
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
