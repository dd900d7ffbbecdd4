// Package revenue joins production and price series on the hourly grid and
// computes the specific revenue under the three German remuneration models:
// direct spot market sale, fixed market value, and the Marktprämie.
package revenue

import (
	"time"

	"github.com/angas/pv-revenue-go/convert"
	"github.com/angas/pv-revenue-go/hours"
	"github.com/angas/pv-revenue-go/types"
)

// YearResult is the specific revenue of one (project, year) pair in ct/kWh,
// rounded to 2 decimals. MarketPremium uses the per-hour premium formula,
// MarketPremiumFlat the coarser Jahresmarktwert approximation.
type YearResult struct {
	TotalProduction   float64
	SpotMarket        float64
	MarketValue       float64
	MarketPremium     float64
	MarketPremiumFlat float64
}

// MonthResult is one month of the forecast-year breakdown. Revenues are
// absolute EUR; specific revenues ct/kWh. The premium figures use the flat
// yearly variant.
type MonthResult struct {
	Month                   time.Month
	Production              float64
	ProductionNegativePrice float64
	SpotRevenue             float64
	PremiumRevenue          float64
	SpecificSpot            float64
	SpecificPremium         float64
}

// Merge inner-joins a production series with a price series on the hour.
// Hours missing from either side are dropped: revenue is only attributed to
// hours present in both. The result keeps the production series order.
func Merge(prod []types.ProductionPoint, prices []types.PricePoint) []types.MergedPoint {
	byHour := make(map[hours.DateHour]types.PricePoint, len(prices))
	for _, p := range prices {
		byHour[p.Hour] = p
	}

	var merged []types.MergedPoint
	for _, pp := range prod {
		price, ok := byHour[pp.Hour]
		if !ok {
			continue
		}
		merged = append(merged, types.MergedPoint{
			Hour:  pp.Hour,
			Yield: pp.Yield,
			Price: price,
		})
	}
	return merged
}

// Calculate computes the specific revenue figures over a merged series.
// Returns ok=false when there is nothing to report (no overlap, or zero
// total production); such pairs are omitted from all summaries.
func Calculate(merged []types.MergedPoint) (YearResult, bool) {
	var (
		total          float64
		spotEur        float64
		marketValueEur float64
		premiumEur     float64
		creditedEur    float64
	)

	for _, m := range merged {
		total += m.Yield
		spotEur += SpotRevenue(m.Yield, m.Price.Spot)
		marketValueEur += SpotRevenue(m.Yield, m.Price.MarketValueMonthly)
		creditedEur += SpotCredit(m.Yield, m.Price.Spot)
		premiumEur += PremiumTopUp(m.Yield, m.Price.Spot, m.Price.ReferenceValue)
	}

	if total == 0 {
		return YearResult{}, false
	}

	flatEur := flatPremiumRevenue(merged)

	return YearResult{
		TotalProduction:   total,
		SpotMarket:        specific(spotEur, total),
		MarketValue:       specific(marketValueEur, total),
		MarketPremium:     specific(creditedEur+premiumEur, total),
		MarketPremiumFlat: specific(flatEur, total),
	}, true
}

// MonthlyBreakdown splits a merged series (normally the synthetic forecast
// year) into 12 months. Premium figures use the flat yearly variant: a single
// rate from the Jahresmarktwert, applied to production in non-negative-price
// hours only.
func MonthlyBreakdown(merged []types.MergedPoint) [12]MonthResult {
	var months [12]MonthResult
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}

	for _, m := range merged {
		idx := int(m.Hour.Month()) - 1
		months[idx].Production += m.Yield
		months[idx].SpotRevenue += SpotRevenue(m.Yield, m.Price.Spot)
		if m.Price.Spot < 0 {
			months[idx].ProductionNegativePrice += m.Yield
		} else {
			rate := FlatPremiumRate(m.Price.ReferenceValue, m.Price.MarketValueYearly)
			months[idx].PremiumRevenue += SpotCredit(m.Yield, m.Price.Spot) + m.Yield*rate/100
		}
	}

	for i := range months {
		if months[i].Production > 0 {
			months[i].SpecificSpot = specific(months[i].SpotRevenue, months[i].Production)
			months[i].SpecificPremium = specific(months[i].PremiumRevenue, months[i].Production)
		}
		months[i].SpotRevenue = convert.TwoDecimals(months[i].SpotRevenue)
		months[i].PremiumRevenue = convert.TwoDecimals(months[i].PremiumRevenue)
	}

	return months
}

func flatPremiumRevenue(merged []types.MergedPoint) float64 {
	var eur float64
	for _, m := range merged {
		if m.Price.Spot < 0 {
			continue
		}
		rate := FlatPremiumRate(m.Price.ReferenceValue, m.Price.MarketValueYearly)
		eur += SpotCredit(m.Yield, m.Price.Spot) + m.Yield*rate/100
	}
	return eur
}

// specific converts an absolute EUR amount into ct/kWh rounded to 2 decimals.
func specific(eur, kWh float64) float64 {
	return convert.TwoDecimals(eur / kWh * 100)
}
