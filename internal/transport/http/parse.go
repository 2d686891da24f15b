package http

import (
	"fmt"
	"time"

	"github.com/camillapd/RoomReservationsAPI/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// parseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC;
// the core never interprets it as an instant, only as an ordered day value.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", field)
	}
	return t, nil
}

// parseHour parses an HH:MM wall-clock time into minutes since midnight.
func parseHour(field, value string) (domain.TimeOfDay, error) {
	t, err := time.Parse(hourLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%s must be in HH:MM format", field)
	}
	return domain.TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
