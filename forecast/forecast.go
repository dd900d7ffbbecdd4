// Package forecast builds the synthetic full-year series for the running
// year: the published partial-year prices are completed with the prior
// year's tail months, and the prior year's production stands in for the
// production that has not happened yet.
package forecast

import (
	"slices"
	"time"

	"github.com/angas/pv-revenue-go/production"
	"github.com/angas/pv-revenue-go/types"
)

// spliceMonth is the first month taken from the prior year. Price data for
// the running year is published through September when the forecast runs.
const spliceMonth = time.October

// SynthesizePrices completes the forecast year's partial price series with
// the prior year's months from October on, shifted forward one year. The two
// ranges are disjoint by construction; overlap is not de-duplicated.
func SynthesizePrices(partial, prior []types.PricePoint) []types.PricePoint {
	synthetic := make([]types.PricePoint, 0, len(partial)+len(prior)/4)
	synthetic = append(synthetic, partial...)

	for _, p := range prior {
		if p.Hour.Month() < spliceMonth {
			continue
		}
		shifted := p
		shifted.Hour = p.Hour.AddYears(1)
		synthetic = append(synthetic, shifted)
	}

	slices.SortFunc(synthetic, func(a, b types.PricePoint) int { return a.Hour.Compare(b.Hour) })

	return synthetic
}

// SynthesizeProduction shifts the prior full year's production forward one
// year. Returns nil when the prior year holds no data; the caller skips the
// forecast for that project.
func SynthesizeProduction(prior []types.ProductionPoint) []types.ProductionPoint {
	if len(prior) == 0 {
		return nil
	}
	return production.ShiftYears(prior, 1)
}
