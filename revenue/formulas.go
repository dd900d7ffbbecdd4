package revenue

// Per-hour remuneration primitives. Prices are ct/kWh, yields kWh, returned
// amounts EUR.

func SpotRevenue(kWh, price float64) float64 {
	return kWh * price / 100
}

// PremiumTopUp is the Marktprämie top-up for one hour. The premium lifts the
// spot price up to the reference value, is never negative, and is suspended
// entirely while the spot price is below zero.
func PremiumTopUp(kWh, spotPrice, referenceValue float64) float64 {
	if spotPrice < 0 {
		return 0
	}
	return kWh * max(referenceValue-spotPrice, 0) / 100
}

// SpotCredit is the revenue an hour earns under the premium scheme before the
// top-up: the spot proceeds, except that negative-price hours earn nothing.
func SpotCredit(kWh, spotPrice float64) float64 {
	if spotPrice < 0 {
		return 0
	}
	return SpotRevenue(kWh, spotPrice)
}

// FlatPremiumRate is the simplified year-level premium in ct/kWh, derived
// from the Jahresmarktwert instead of the hourly spot price.
func FlatPremiumRate(referenceValue, yearlyMarketValue float64) float64 {
	return max(referenceValue-yearlyMarketValue, 0)
}
