package types

import (
	"github.com/angas/pv-revenue-go/hours"
)

// PricePoint is one hour of the spot market series with the remuneration
// baselines already attached. Prices are in ct/kWh and may be negative.
type PricePoint struct {
	Hour               hours.DateHour
	Spot               float64 // Spotmarktpreis
	MarketValueMonthly float64 // Marktwert Solar for the point's calendar month
	MarketValueYearly  float64 // Jahresmarktwert for the point's year
	ReferenceValue     float64 // Anzulegender Wert
}

// ProductionPoint is one hour of normalized PV production. Yield is in kWh
// and never negative.
type ProductionPoint struct {
	Hour  hours.DateHour
	Yield float64
}

// MergedPoint is the inner join of a ProductionPoint and a PricePoint on the
// same hour. Revenue is only attributed to hours present in both series.
type MergedPoint struct {
	Hour  hours.DateHour
	Yield float64
	Price PricePoint
}

// RawReading is a single untyped production sample as delivered by an
// uploaded file or a bundled example dataset: a UTC timestamp string and a
// yield value at an arbitrary sampling interval.
type RawReading struct {
	Timestamp string
	Yield     float64
}
