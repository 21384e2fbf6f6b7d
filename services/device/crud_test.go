package device

import (
	"fmt"
	"testing"
	"time"

	"equiptrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// -------- test fakes --------

type fakeDeviceRepo struct {
	devices map[string]*models.Device
	order   []string // insertion order; GetAll returns newest first
	err     error

	updateCalls int
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[string]*models.Device{}}
}

func (f *fakeDeviceRepo) GetByID(id string) (*models.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.devices[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDeviceRepo) GetAll() ([]models.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Device, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, *f.devices[f.order[i]])
	}
	return out, nil
}

func (f *fakeDeviceRepo) Create(d *models.Device) error {
	if f.err != nil {
		return f.err
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	f.devices[d.ID] = &cp
	f.order = append(f.order, d.ID)
	return nil
}

func (f *fakeDeviceRepo) UpdateSetDocument(id string, updateDoc bson.M) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.updateCalls++
	d, ok := f.devices[id]
	if !ok {
		return false, nil
	}
	for key, value := range updateDoc {
		switch key {
		case "name":
			d.Name = value.(string)
		case "expiryDate":
			d.ExpiryDate = value.(string)
		case "building":
			d.Building = value.(string)
		case "room":
			d.Room = value.(string)
		case "location":
			d.Location = value.(string)
		case "updatedAt":
			d.UpdatedAt = value.(time.Time)
		}
	}
	return true, nil
}

func (f *fakeDeviceRepo) Delete(id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.devices[id]; !ok {
		return false, nil
	}
	delete(f.devices, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func newTestService(repo *fakeDeviceRepo, now time.Time) *DefaultDeviceService {
	return &DefaultDeviceService{
		Repo: repo,
		Now:  func() time.Time { return now },
	}
}

func strPtr(s string) *string { return &s }

// -------- tests --------

func TestCreateDevice(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeDeviceRepo(), now)

	created, err := svc.CreateDevice(CreateDeviceInput{
		Name:       "Card Reader 1",
		ExpiryDate: "2099-01-01",
		Building:   "A",
		Room:       "101",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "A-101", created.Location)
	assert.Equal(t, models.DeviceStatusNormal, created.Status)
}

func TestCreateDeviceMissingField(t *testing.T) {
	svc := newTestService(newFakeDeviceRepo(), time.Now())

	_, err := svc.CreateDevice(CreateDeviceInput{
		Name:     "Card Reader 1",
		Building: "A",
		Room:     "101",
	})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestGetDeviceByIDNotFound(t *testing.T) {
	svc := newTestService(newFakeDeviceRepo(), time.Now())

	_, err := svc.GetDeviceByID("missing")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestUpdateDeviceRecomputesLocationFromMergedValues(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeDeviceRepo()
	svc := newTestService(repo, now)

	created, err := svc.CreateDevice(CreateDeviceInput{
		Name: "Card Reader 1", ExpiryDate: "2099-01-01", Building: "A", Room: "101",
	})
	require.NoError(t, err)

	// Only the room is supplied; the building comes from the stored record.
	updated, err := svc.UpdateDevice(created.ID, UpdateDeviceInput{Room: strPtr("305")})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.Building)
	assert.Equal(t, "305", updated.Room)
	assert.Equal(t, "A-305", updated.Location)
	// updatedAt comes from the service clock, not the wall clock.
	assert.Equal(t, now, updated.UpdatedAt)
}

func TestUpdateDeviceEmptyInputLeavesRecordUntouched(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeDeviceRepo()
	svc := newTestService(repo, now)

	created, err := svc.CreateDevice(CreateDeviceInput{
		Name: "Card Reader 1", ExpiryDate: "2099-01-01", Building: "A", Room: "101",
	})
	require.NoError(t, err)

	result, err := svc.UpdateDevice(created.ID, UpdateDeviceInput{})
	require.NoError(t, err)
	assert.Equal(t, "A-101", result.Location)
	assert.Equal(t, created.UpdatedAt, result.UpdatedAt)
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateDeviceNotFound(t *testing.T) {
	svc := newTestService(newFakeDeviceRepo(), time.Now())

	_, err := svc.UpdateDevice("missing", UpdateDeviceInput{Room: strPtr("305")})
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDeleteDeviceNotFound(t *testing.T) {
	svc := newTestService(newFakeDeviceRepo(), time.Now())

	err := svc.DeleteDevice("missing")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestListDevicesFilters(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeDeviceRepo()
	svc := newTestService(repo, now)

	seed := []CreateDeviceInput{
		{Name: "Card Reader", ExpiryDate: "2099-01-01", Building: "A", Room: "101"},
		{Name: "Door Sensor", ExpiryDate: ymd(now.AddDate(0, 0, 3)), Building: "B", Room: "202"},
		{Name: "Gateway", ExpiryDate: ymd(now.AddDate(0, 0, -2)), Building: "A", Room: "303"},
	}
	for _, input := range seed {
		_, err := svc.CreateDevice(input)
		require.NoError(t, err)
	}

	all, err := svc.ListDevices(models.DeviceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "Gateway", all[0].Name)

	expiring, err := svc.ListDevices(models.DeviceFilter{Status: models.DeviceStatusExpiring})
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Door Sensor", expiring[0].Name)

	// Search is case-insensitive and matches name or location.
	byName, err := svc.ListDevices(models.DeviceFilter{Search: "card reader"})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byLocation, err := svc.ListDevices(models.DeviceFilter{Search: "a-303"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Gateway", byLocation[0].Name)

	none, err := svc.ListDevices(models.DeviceFilter{Status: models.DeviceStatusExpired, Search: "card"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetDeviceStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeDeviceRepo()
	svc := newTestService(repo, now)

	dates := []string{
		"2099-01-01",               // normal
		ymd(now.AddDate(0, 0, 3)),  // expiring
		ymd(now.AddDate(0, 0, -2)), // expired
	}
	for i, date := range dates {
		_, err := svc.CreateDevice(CreateDeviceInput{
			Name: fmt.Sprintf("Device %d", i), ExpiryDate: date, Building: "A", Room: "101",
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetDeviceStats()
	require.NoError(t, err)
	assert.Equal(t, &models.DeviceStats{Total: 3, Normal: 1, Expiring: 1, Expired: 1}, stats)
}
