package device

import (
	"time"

	deviceRepo "equiptrack/database/repository/device"
	"equiptrack/models"
)

// CreateDeviceInput carries the fields required to register a device.
type CreateDeviceInput struct {
	Name       string
	ExpiryDate string
	Building   string
	Room       string
}

// UpdateDeviceInput carries a partial update; nil fields are left untouched.
type UpdateDeviceInput struct {
	Name       *string
	ExpiryDate *string
	Building   *string
	Room       *string
}

// DeviceService defines business logic for device operations.
type DeviceService interface {
	// CreateDevice validates input, derives the location, and persists a new device.
	CreateDevice(input CreateDeviceInput) (*models.Device, error)
	// ListDevices returns devices newest-first with derived status, narrowed by the filter.
	ListDevices(filter models.DeviceFilter) ([]models.Device, error)
	// GetDeviceByID retrieves a single device with derived status.
	GetDeviceByID(id string) (*models.Device, error)
	// UpdateDevice applies a partial update, recomputing the location when
	// building or room changes.
	UpdateDevice(id string, input UpdateDeviceInput) (*models.Device, error)
	// DeleteDevice removes a device record.
	DeleteDevice(id string) error
	// GetDeviceStats recounts devices by derived status.
	GetDeviceStats() (*models.DeviceStats, error)
}

// DefaultDeviceService is the production implementation.
type DefaultDeviceService struct {
	Repo deviceRepo.DeviceRepository
	// Now overrides the clock used for status derivation; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultDeviceService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
