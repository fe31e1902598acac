package handlers

import (
	"mightymoves/services/session"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Theme    *ThemeHandler
	Auth     *AuthHandler
	Booking  *BookingHandler
	Catalog  *CatalogHandler
	Tracking *TrackingHandler
	Admin    *AdminHandler

	// Sessions gates signed-in customer routes.
	Sessions session.Store
	// AdminToken is the static bearer token for the admin console.
	AdminToken string
	// SessionSecret signs the client session cookie.
	SessionSecret string
	SecureCookies bool
	AllowOrigins  []string
}
