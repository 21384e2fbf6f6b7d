package models

import "time"

// Session is a server-side login record keyed by an opaque token. The same
// token travels in the client's cookie; expiry is absolute, set at issuance.
// A user may hold any number of concurrent sessions.
type Session struct {
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"userId" json:"userId"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the session's absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
