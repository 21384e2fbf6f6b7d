package models

import "time"

// Device status values derived from the expiry date. Never persisted.
const (
	DeviceStatusNormal   = "normal"
	DeviceStatusExpiring = "expiring"
	DeviceStatusExpired  = "expired"
)

// Device is a tracked physical device. Location is the stored derived string
// "building-room", recomputed whenever either component changes. Status is a
// read-time projection and is excluded from storage.
type Device struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	ExpiryDate string    `bson:"expiryDate" json:"expiryDate"`
	Building   string    `bson:"building" json:"building"`
	Room       string    `bson:"room" json:"room"`
	Location   string    `bson:"location" json:"location"`
	Status     string    `bson:"-" json:"status,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DeviceFilter narrows a device listing. Status must match exactly; Search is
// a case-insensitive substring match against name or location.
type DeviceFilter struct {
	Status string
	Search string
}

// DeviceStats aggregates device counts by derived status.
type DeviceStats struct {
	Total    int `json:"total"`
	Normal   int `json:"normal"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}
