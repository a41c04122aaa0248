package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/fester-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var bearerSecurity = []map[string][]string{{"bearerAuth": {}}}

func protected(o *huma.Operation) {
	o.Security = bearerSecurity
}

func created(o *huma.Operation) {
	o.Security = bearerSecurity
	o.DefaultStatus = http.StatusCreated
}

func RegisterRoutes(r chi.Router, authHandler *auth.AuthHandler, eventHandler *EventHandler, guestHandler *GuestHandler) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	config := huma.DefaultConfig("Fester API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	huma.Post(api, "/api/auth/register", authHandler.HandleRegister, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Post(api, "/api/auth/login", authHandler.HandleLogin)
	huma.Get(api, "/api/auth/discord/login", authHandler.HandleDiscordLogin)
	huma.Get(api, "/api/auth/discord/callback", authHandler.HandleDiscordCallback)

	// Protected routes
	huma.Get(api, "/api/auth/me", authHandler.HandleMe, protected)

	huma.Get(api, "/api/events", eventHandler.HandleList, protected)
	huma.Post(api, "/api/events", eventHandler.HandleCreate, created)
	huma.Get(api, "/api/events/{eventId}", eventHandler.HandleGet, protected)
	huma.Put(api, "/api/events/{eventId}", eventHandler.HandleUpdate, protected)
	huma.Delete(api, "/api/events/{eventId}", eventHandler.HandleCancel, protected)
	huma.Get(api, "/api/events/{eventId}/members", eventHandler.HandleListMembers, protected)
	huma.Post(api, "/api/events/{eventId}/members", eventHandler.HandleAddMember, created)

	huma.Get(api, "/api/events/{eventId}/guests", guestHandler.HandleList, protected)
	huma.Post(api, "/api/events/{eventId}/guests", guestHandler.HandleAdd, created)
	huma.Post(api, "/api/events/{eventId}/guests/import", guestHandler.HandleImport, created)
	huma.Put(api, "/api/events/{eventId}/guests/{guestId}", guestHandler.HandleUpdate, protected)
	huma.Post(api, "/api/events/{eventId}/checkin", guestHandler.HandleCheckIn, protected)

	return api
}
