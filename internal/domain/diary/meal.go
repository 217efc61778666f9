package diary

import (
	"time"

	"gorm.io/datatypes"
)

// Meal is a named time-of-day bucket diary entries are grouped under.
// A meal whose From equals To spans the whole day.
type Meal struct {
	ID   int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string         `gorm:"not null" json:"name"`
	From datatypes.Time `gorm:"column:from_time;not null" json:"from"`
	To   datatypes.Time `gorm:"column:to_time;not null" json:"to"`
	Rank int            `gorm:"not null;index" json:"rank"`
}

func (Meal) TableName() string { return "meal" }

func (m Meal) IsAllDay() bool { return m.From == m.To }

// Contains reports whether the time-of-day of t falls inside the meal window.
// Windows that wrap past midnight (From > To) are supported.
func (m Meal) Contains(t time.Time) bool {
	if m.IsAllDay() {
		return true
	}
	tod := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
	if m.From < m.To {
		return tod >= m.From && tod < m.To
	}
	return tod >= m.From || tod < m.To
}

// ClockTime builds a datatypes.Time from hour and minute.
func ClockTime(hour, minute int) datatypes.Time {
	return datatypes.NewTime(hour, minute, 0, 0)
}
