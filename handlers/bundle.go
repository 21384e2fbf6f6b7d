package handlers

import "equiptrack/services/auth"

// HandlerBundle aggregates the handlers and shared session manager wired in
// main and consumed by route registration.
type HandlerBundle struct {
	Sessions *auth.SessionManager
	Auth     *AuthHandler
	Devices  *DeviceHandler
}
