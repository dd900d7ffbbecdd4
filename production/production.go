// Package production normalizes raw PV yield series onto the hourly CET grid
// used by the price data.
package production

import (
	"fmt"
	"slices"
	"time"

	"github.com/angas/pv-revenue-go/hours"
	"github.com/angas/pv-revenue-go/types"
)

// Timestamp formats seen in inverter and portal exports. All are UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02.01.2006 15:04",
}

// ParseError reports an unparsable raw reading timestamp.
type ParseError struct {
	Timestamp string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable production timestamp %q", e.Timestamp)
}

// Normalize turns a raw, possibly sub-hourly and unordered series into one
// point per hour on the CET grid:
//   - negative readings (export metering, sensor noise) are clamped to zero
//   - all readings falling into the same hour are summed
//   - the UTC source timestamps get the flat +1h shift to CET
//
// The result is not filtered to any year; callers cut out the range they need.
func Normalize(raw []types.RawReading) ([]types.ProductionPoint, error) {
	buckets := make(map[hours.DateHour]float64, len(raw))
	for _, reading := range raw {
		t, err := parseTimestamp(reading.Timestamp)
		if err != nil {
			return nil, err
		}
		buckets[hours.FromUTC(t)] += max(reading.Yield, 0)
	}

	points := make([]types.ProductionPoint, 0, len(buckets))
	for hour, yield := range buckets {
		points = append(points, types.ProductionPoint{Hour: hour, Yield: yield})
	}
	slices.SortFunc(points, func(a, b types.ProductionPoint) int { return a.Hour.Compare(b.Hour) })

	return points, nil
}

// ShiftYears moves every point by whole calendar years. The forecast
// synthesizer uses it to let the prior year's production stand in for the
// forecast year.
func ShiftYears(points []types.ProductionPoint, years int) []types.ProductionPoint {
	shifted := make([]types.ProductionPoint, len(points))
	for i, p := range points {
		shifted[i] = types.ProductionPoint{Hour: p.Hour.AddYears(years), Yield: p.Yield}
	}
	return shifted
}

// FilterYear keeps the points falling in the given calendar year.
func FilterYear(points []types.ProductionPoint, year int) []types.ProductionPoint {
	var result []types.ProductionPoint
	for _, p := range points {
		if p.Hour.Year() == year {
			result = append(result, p)
		}
	}
	return result
}

// Years lists the calendar years present in the series, ascending.
func Years(points []types.ProductionPoint) []int {
	var years []int
	for _, p := range points {
		y := p.Hour.Year()
		if !slices.Contains(years, y) {
			years = append(years, y)
		}
	}
	slices.Sort(years)
	return years
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Timestamp: s}
}
