package timeutil

import (
	"time"
)

// Madrid is the timezone all collection schedules and timestamps use.
var Madrid *time.Location

func init() {
	var err error
	Madrid, err = time.LoadLocation("Europe/Madrid")
	if err != nil {
		// Fallback: CET without DST if tzdata is not available
		Madrid = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in Europe/Madrid.
func Now() time.Time {
	return time.Now().In(Madrid)
}

// ToMadrid converts any time to Europe/Madrid.
func ToMadrid(t time.Time) time.Time {
	return t.In(Madrid)
}

// StartOfDay returns 00:00:00 in Madrid for the given time.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Madrid)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Madrid)
}

// EndOfDay returns 23:59:59.999999999 in Madrid for the given time.
func EndOfDay(t time.Time) time.Time {
	local := t.In(Madrid)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, Madrid)
}

// Common layouts for formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	MesLayout      = "2006-01"
)
