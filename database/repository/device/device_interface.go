package deviceRepo

import (
	"equiptrack/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DeviceRepository defines methods for device data access.
type DeviceRepository interface {
	// GetByID retrieves a device by its unique ID.
	// Returns (nil, nil) when no such device exists.
	GetByID(id string) (*models.Device, error)
	// GetAll retrieves all devices ordered by creation time descending.
	GetAll() ([]models.Device, error)
	// Create inserts a new device record.
	Create(device *models.Device) error
	// UpdateSetDocument applies a partial $set update to the device with the
	// given ID. Returns (false, nil) when the ID matched no document.
	UpdateSetDocument(id string, updateDoc bson.M) (bool, error)
	// Delete removes a device record. Returns (false, nil) when the ID
	// matched no document.
	Delete(id string) (bool, error)
}
