package device

import (
	"fmt"

	"equiptrack/models"
	"equiptrack/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateDevice validates input, derives the location, and persists a new device.
func (s *DefaultDeviceService) CreateDevice(input CreateDeviceInput) (*models.Device, error) {
	if input.Name == "" || input.ExpiryDate == "" || input.Building == "" || input.Room == "" {
		return nil, ErrMissingField
	}

	device := &models.Device{
		ID:         uuid.New().String(),
		Name:       input.Name,
		ExpiryDate: input.ExpiryDate,
		Building:   input.Building,
		Room:       input.Room,
		Location:   fmt.Sprintf("%s-%s", input.Building, input.Room),
	}

	if err := s.Repo.Create(device); err != nil {
		utils.GetLogger().Error("CreateDevice: failed to persist device", zap.Error(err))
		return nil, err
	}

	device.Status = ComputeStatus(device.ExpiryDate, s.clock())
	return device, nil
}

// GetDeviceByID retrieves a single device with derived status.
func (s *DefaultDeviceService) GetDeviceByID(id string) (*models.Device, error) {
	device, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrDeviceNotFound
	}
	device.Status = ComputeStatus(device.ExpiryDate, s.clock())
	return device, nil
}

// UpdateDevice applies only the supplied fields. When building or room
// changes, the location is recomputed from the merged values, taking the
// other component from the current record when it is not part of the update.
// The read-then-write is not transactional; concurrent updates to the same
// device resolve last-write-wins.
func (s *DefaultDeviceService) UpdateDevice(id string, input UpdateDeviceInput) (*models.Device, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrDeviceNotFound
	}

	updateDoc := bson.M{}
	if input.Name != nil {
		updateDoc["name"] = *input.Name
	}
	if input.ExpiryDate != nil {
		updateDoc["expiryDate"] = *input.ExpiryDate
	}

	building := current.Building
	room := current.Room
	if input.Building != nil {
		building = *input.Building
		updateDoc["building"] = building
	}
	if input.Room != nil {
		room = *input.Room
		updateDoc["room"] = room
	}
	if input.Building != nil || input.Room != nil {
		updateDoc["location"] = fmt.Sprintf("%s-%s", building, room)
	}

	// An empty update leaves the record untouched, updatedAt included.
	if len(updateDoc) == 0 {
		current.Status = ComputeStatus(current.ExpiryDate, s.clock())
		return current, nil
	}
	updateDoc["updatedAt"] = s.clock()

	matched, err := s.Repo.UpdateSetDocument(id, updateDoc)
	if err != nil {
		utils.GetLogger().Error("UpdateDevice: failed to update device", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !matched {
		return nil, ErrDeviceNotFound
	}

	return s.GetDeviceByID(id)
}

// DeleteDevice removes a device record.
func (s *DefaultDeviceService) DeleteDevice(id string) error {
	deleted, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDeviceNotFound
	}
	return nil
}
