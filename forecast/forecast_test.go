package forecast

import (
	"fmt"
	"testing"
	"time"

	"github.com/angas/pv-revenue-go/hours"
	"github.com/angas/pv-revenue-go/types"
)

// one price point per day keeps the fixtures small while still covering
// every month boundary.
func dailyPrices(year int, fromMonth, toMonth time.Month) []types.PricePoint {
	var points []types.PricePoint
	for m := fromMonth; m <= toMonth; m++ {
		for d := 1; d <= daysIn(year, m); d++ {
			points = append(points, types.PricePoint{
				Hour: hours.DateHour{Date: fmt.Sprintf("%04d-%02d-%02d", year, m, d), Hour: 12},
				Spot: float64(m),
			})
		}
	}
	return points
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func TestSynthesizePricesFullCoverage(t *testing.T) {
	partial := dailyPrices(2025, time.January, time.September)
	prior := dailyPrices(2024, time.January, time.December)

	synthetic := SynthesizePrices(partial, prior)

	expected := len(partial) + 31 + 30 + 31 // prior Oct, Nov, Dec
	if len(synthetic) != expected {
		t.Fatalf("expected %d points, got %d", expected, len(synthetic))
	}

	seenMonths := make(map[time.Month]bool)
	seen := make(map[hours.DateHour]bool)
	for i, p := range synthetic {
		if p.Hour.Year() != 2025 {
			t.Errorf("point %d not in forecast year: %v", i, p.Hour)
		}
		if seen[p.Hour] {
			t.Errorf("duplicate timestamp %v", p.Hour)
		}
		seen[p.Hour] = true
		seenMonths[p.Hour.Month()] = true
		if i > 0 && synthetic[i-1].Hour.Compare(p.Hour) >= 0 {
			t.Errorf("points not strictly increasing at index %d", i)
		}
	}

	if len(seenMonths) != 12 {
		t.Errorf("expected synthetic coverage of all 12 months, got %d", len(seenMonths))
	}

	// The spliced months keep their prior-year values (here: the month
	// number used as spot price).
	last := synthetic[len(synthetic)-1]
	if last.Hour.Month() != time.December || last.Spot != float64(time.December) {
		t.Errorf("spliced point must keep prior-year values, got %+v", last)
	}
}

func TestSynthesizePricesKeepsPartialOnly(t *testing.T) {
	// Prior year data before October never leaks into the splice.
	prior := dailyPrices(2024, time.January, time.September)
	synthetic := SynthesizePrices(nil, prior)
	if len(synthetic) != 0 {
		t.Errorf("expected no points from prior Jan-Sep, got %d", len(synthetic))
	}
}

func TestSynthesizeProduction(t *testing.T) {
	prior := []types.ProductionPoint{
		{Hour: hours.DateHour{Date: "2024-04-01", Hour: 9}, Yield: 2.5},
		{Hour: hours.DateHour{Date: "2024-11-01", Hour: 9}, Yield: 0.5},
	}

	synthetic := SynthesizeProduction(prior)
	if len(synthetic) != 2 {
		t.Fatalf("expected 2 points, got %d", len(synthetic))
	}
	if synthetic[0].Hour != (hours.DateHour{Date: "2025-04-01", Hour: 9}) {
		t.Errorf("expected shifted hour 2025-04-01 09, got %v", synthetic[0].Hour)
	}
	if synthetic[0].Yield != 2.5 {
		t.Errorf("yield must be unchanged, got %v", synthetic[0].Yield)
	}
}

func TestSynthesizeProductionEmptyPriorYear(t *testing.T) {
	if SynthesizeProduction(nil) != nil {
		t.Errorf("no prior-year production must yield no forecast")
	}
}
