package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/fester-api/internal/config"
	"github.com/gdg-garage/fester-api/internal/models"
	"github.com/gdg-garage/fester-api/internal/store"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const (
	DiscordAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	DiscordTokenEndpoint     = "https://discord.com/api/oauth2/token"
	DiscordUserAPI           = "https://discord.com/api/users/@me"
	DiscordUserGuildsAPI     = "https://discord.com/api/users/@me/guilds"

	minPasswordLength = 6
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	store       store.Store
	cfg         *config.Config
	logger      *log.Logger
	now         func() time.Time

	userAPI   string
	guildsAPI string
}

func NewAuthHandler(cfg *config.Config, s store.Store, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"identify", "email", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  DiscordAuthorizeEndpoint,
				TokenURL: DiscordTokenEndpoint,
			},
		},
		store:     s,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		userAPI:   DiscordUserAPI,
		guildsAPI: DiscordUserGuildsAPI,
	}
}

// AuthInput is embedded in every protected operation's input.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer session token"`
}

// Authorize verifies the Authorization header and returns the caller's id.
func (h *AuthHandler) Authorize(ctx context.Context, header string) (string, error) {
	token, err := bearerToken(header)
	if err != nil {
		return "", huma.Error401Unauthorized("Missing or malformed bearer token")
	}
	userID, err := h.ParseToken(token)
	if err != nil {
		h.logger.WithError(err).Debug("rejected session token")
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}
	return userID, nil
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar,omitempty"`
}

func newUserResponse(u *models.User) UserResponse {
	res := UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
	if u.Email != nil {
		res.Email = *u.Email
	}
	return res
}

type SessionResponse struct {
	Body struct {
		User  UserResponse `json:"user"`
		Token string       `json:"token"`
	}
}

func (h *AuthHandler) newSession(u *models.User) (*SessionResponse, error) {
	token, err := h.GenerateToken(u.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}
	res := &SessionResponse{}
	res.Body.User = newUserResponse(u)
	res.Body.Token = token
	return res, nil
}

type RegisterRequest struct {
	Body struct {
		Email     string `json:"email" format:"email" doc:"Login email"`
		Password  string `json:"password" minLength:"6" doc:"Plain text password"`
		FirstName string `json:"first_name" doc:"First name"`
		LastName  string `json:"last_name" doc:"Last name"`
	}
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Body.Email))
	if email == "" {
		return nil, huma.Error400BadRequest("Email is required")
	}
	if len(input.Body.Password) < minPasswordLength {
		return nil, huma.Error400BadRequest("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error400BadRequest("Password cannot be hashed: " + err.Error())
	}

	user := models.User{
		Email:        &email,
		PasswordHash: string(hash),
		FirstName:    input.Body.FirstName,
		LastName:     input.Body.LastName,
	}
	if err := h.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, huma.Error409Conflict("Email already registered")
		}
		h.logger.WithError(err).Error("create user failed")
		return nil, huma.Error502BadGateway("Failed to create user")
	}

	h.logger.WithField("user_id", user.ID).Info("user registered")
	return h.newSession(&user)
}

type LoginRequest struct {
	Body struct {
		Email    string `json:"email" doc:"Login email"`
		Password string `json:"password" doc:"Plain text password"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Body.Email))
	user, err := h.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error401Unauthorized("Invalid credentials")
		}
		h.logger.WithError(err).Error("load user failed")
		return nil, huma.Error502BadGateway("Failed to load user")
	}

	if user.PasswordHash == "" {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	return h.newSession(user)
}

type MeResponse struct {
	Body UserResponse
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeResponse, error) {
	userID, err := h.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := h.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		return nil, huma.Error502BadGateway("Failed to load user")
	}

	return &MeResponse{Body: newUserResponse(user)}, nil
}

// RedirectResponse sends the browser to the Discord consent screen.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

func (h *AuthHandler) HandleDiscordLogin(ctx context.Context, input *struct{}) (*RedirectResponse, error) {
	if !h.cfg.DiscordOAuthEnabled() {
		return nil, huma.Error404NotFound("Discord login is not configured")
	}
	state, err := h.generateState()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate state")
	}
	return &RedirectResponse{
		Status:   http.StatusTemporaryRedirect,
		Location: h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline),
	}, nil
}
