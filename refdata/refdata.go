// Package refdata loads the spot market price files and the fixed
// remuneration tables once at startup into an immutable Reference that all
// calculation components read from.
package refdata

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/angas/pv-revenue-go/spotmarket"
	"github.com/angas/pv-revenue-go/types"
)

// ErrYearMissing is returned when no price series is loaded for a year.
// Callers skip such years rather than failing the whole calculation.
var ErrYearMissing = errors.New("no reference price data for year")

type Reference struct {
	prices         map[int][]types.PricePoint
	referenceValue float64
}

// Load reads Spotmarktpreis<year>.csv for every requested year from dir.
// A missing or broken file degrades to "no data for that year" with a logged
// warning; it never fails the process.
func Load(logger *slog.Logger, dir string, years []int, referenceValue float64) *Reference {
	r := &Reference{
		prices:         make(map[int][]types.PricePoint),
		referenceValue: referenceValue,
	}

	for _, year := range years {
		points, err := loadYear(dir, year, referenceValue)
		if err != nil {
			logger.Warn("skipping reference year",
				slog.Int("year", year),
				slog.Any("error", err))
			continue
		}
		r.prices[year] = points
		logger.Debug("loaded reference prices",
			slog.Int("year", year),
			slog.Int("hours", len(points)))
	}

	return r
}

func loadYear(dir string, year int, referenceValue float64) ([]types.PricePoint, error) {
	baselines, ok := BaselinesFor(year, referenceValue)
	if !ok {
		return nil, fmt.Errorf("no market value table for year %d", year)
	}

	name := filepath.Join(dir, fmt.Sprintf("Spotmarktpreis%d.csv", year))
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening price file: %w", err)
	}
	defer f.Close()

	points, err := spotmarket.Parse(f, baselines)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("price file %s holds no records", name)
	}

	return points, nil
}

// BaselinesFor looks up the fixed remuneration constants for a year.
func BaselinesFor(year int, referenceValue float64) (spotmarket.Baselines, bool) {
	monthly, ok := monthlyMarketValues[year]
	if !ok {
		return spotmarket.Baselines{}, false
	}
	return spotmarket.Baselines{
		MonthlyMarketValues: monthly,
		YearlyMarketValue:   yearlyMarketValues[year],
		ReferenceValue:      referenceValue,
	}, true
}

// PricesForYear returns the hourly price series of a year, or ErrYearMissing.
// The returned slice is shared and must not be mutated.
func (r *Reference) PricesForYear(year int) ([]types.PricePoint, error) {
	points, ok := r.prices[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrYearMissing, year)
	}
	return points, nil
}

func (r *Reference) HasYear(year int) bool {
	_, ok := r.prices[year]
	return ok
}

// Years lists the loaded years, ascending.
func (r *Reference) Years() []int {
	years := make([]int, 0, len(r.prices))
	for y := range r.prices {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

func (r *Reference) ReferenceValue() float64 {
	return r.referenceValue
}

// YearlyMarketValue returns the Jahresmarktwert for a year, zero when the
// table has no entry.
func (r *Reference) YearlyMarketValue(year int) float64 {
	return yearlyMarketValues[year]
}

// NewReference builds a Reference from already-normalized series. Used by
// tests and by callers that source prices elsewhere.
func NewReference(prices map[int][]types.PricePoint, referenceValue float64) *Reference {
	return &Reference{prices: prices, referenceValue: referenceValue}
}
