package hours

import (
	"fmt"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	hourLayout   = "2006-01-02 15"
	germanLayout = "02.01.2006 15:04"
)

// All price and production series are aligned on this grid: one slot per
// civil hour in CET. The source data applies a flat +1h offset to UTC, so a
// fixed zone is used instead of Europe/Berlin to avoid DST double-shifts.
var cetLoc = time.FixedZone("CET", 3600)

// DateHour identifies one slot on the hourly grid in local civil time (CET).
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

func (dh DateHour) IsoString() string {
	return fmt.Sprintf("%sT%02d:00:00+01:00", dh.Date, dh.Hour)
}

func (dh DateHour) Time() time.Time {
	t, err := time.ParseInLocation(hourLayout, dh.String(), cetLoc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (dh DateHour) Add(hours int) DateHour {
	t := dh.Time()
	if t.IsZero() {
		return dh
	}
	return FromTime(t.Add(time.Duration(hours) * time.Hour))
}

// AddYears shifts the slot by whole calendar years, keeping month, day and
// hour. Used when splicing prior-year data into the forecast year.
func (dh DateHour) AddYears(years int) DateHour {
	t := dh.Time()
	if t.IsZero() {
		return dh
	}
	return FromTime(t.AddDate(years, 0, 0))
}

func (dh DateHour) Year() int {
	return dh.Time().Year()
}

func (dh DateHour) Month() time.Month {
	return dh.Time().Month()
}

func (dh DateHour) Compare(other DateHour) int {
	if dh == other {
		return 0
	}
	if dh.Date < other.Date {
		return -1
	}
	if dh.Date > other.Date {
		return 1
	}
	if dh.Hour < other.Hour {
		return -1
	}
	return 1
}

func (dh DateHour) IsZero() bool {
	return dh.Date == "" && dh.Hour == 0
}

// FromTime truncates t to the hour it falls in, in the time zone t carries.
func FromTime(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour()),
	}
}

// FromUTC converts a UTC instant onto the CET grid (the flat +1h shift the
// production source data requires) and truncates it to the hour.
func FromUTC(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	return FromTime(t.UTC().In(cetLoc))
}

// FromGerman parses the "02.01.2006" date and "15:04" clock strings used by
// the spot market price files. The clock is the interval start.
func FromGerman(date, clock string) (DateHour, error) {
	t, err := time.ParseInLocation(germanLayout, date+" "+clock, cetLoc)
	if err != nil {
		return DateHour{}, fmt.Errorf("failed to parse date %q %q: %w", date, clock, err)
	}
	return FromTime(t), nil
}
