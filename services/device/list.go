package device

import (
	"strings"

	"equiptrack/models"
)

// ListDevices fetches all devices newest-first, derives each status, then
// applies the status filter followed by the search filter.
func (s *DefaultDeviceService) ListDevices(filter models.DeviceFilter) ([]models.Device, error) {
	devices, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}

	now := s.clock()
	search := strings.ToLower(filter.Search)

	result := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		d.Status = ComputeStatus(d.ExpiryDate, now)
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(d.Name), search) &&
			!strings.Contains(strings.ToLower(d.Location), search) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

// GetDeviceStats recounts devices by derived status on every call. Counts are
// always consistent with the live data at the cost of a full scan.
func (s *DefaultDeviceService) GetDeviceStats() (*models.DeviceStats, error) {
	devices, err := s.ListDevices(models.DeviceFilter{})
	if err != nil {
		return nil, err
	}

	stats := &models.DeviceStats{Total: len(devices)}
	for _, d := range devices {
		switch d.Status {
		case models.DeviceStatusNormal:
			stats.Normal++
		case models.DeviceStatusExpiring:
			stats.Expiring++
		case models.DeviceStatusExpired:
			stats.Expired++
		}
	}
	return stats, nil
}
