package diary

import (
	"fmt"
	"strings"
	"time"

	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
)

const DateLayout = "2006-01-02"

// EpochDay is the number of days since 1970-01-01 for the calendar date of t.
func EpochDay(t time.Time) int64 {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.Unix() / 86400
}

func FromEpochDay(day int64) time.Time {
	return time.Unix(day*86400, 0).UTC()
}

// ParseDate parses YYYY-MM-DD into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", domainerr.ErrInvalidArgument, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }
