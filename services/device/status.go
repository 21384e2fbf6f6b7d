package device

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"equiptrack/models"
)

// expiryDatePattern accepts calendar dates in YYYY-MM-DD form only; a time or
// timezone component is rejected.
var expiryDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ComputeStatus classifies a device's expiry date relative to now. A missing
// or unparseable date is treated as already expired, never as normal. The day
// difference is ceil((expiry - start of today) / 24h): negative means expired,
// 0 through 7 means expiring (expiring-today and exactly-7-days both count),
// anything later is normal.
//
// The date is built from its numeric components rather than parsed as a
// generic timestamp, so the same literal string yields the same status in
// every server timezone.
func ComputeStatus(expiryDate string, now time.Time) string {
	parts := expiryDatePattern.FindStringSubmatch(expiryDate)
	if parts == nil {
		return models.DeviceStatusExpired
	}

	year, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])

	expiry := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	diffDays := int(math.Ceil(expiry.Sub(todayStart).Hours() / 24))
	switch {
	case diffDays < 0:
		return models.DeviceStatusExpired
	case diffDays <= 7:
		return models.DeviceStatusExpiring
	default:
		return models.DeviceStatusNormal
	}
}
