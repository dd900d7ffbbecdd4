package refdata

// Published Marktwert Solar per calendar month in ct/kWh. One row per
// regulatory year, January first.
var monthlyMarketValues = map[int][12]float64{
	2021: {5.543, 4.499, 4.105, 4.551, 4.187, 6.864, 7.409, 7.681, 11.715, 12.804, 18.307, 27.075},
	2022: {17.838, 11.871, 20.712, 14.566, 15.132, 18.940, 26.093, 39.910, 31.673, 12.904, 15.374, 24.661},
	2023: {12.291, 12.343, 8.883, 8.002, 5.356, 7.124, 5.173, 7.533, 7.447, 6.763, 8.525, 6.592},
	2024: {7.535, 5.875, 4.965, 3.795, 3.161, 4.635, 3.554, 4.263, 4.512, 6.752, 10.076, 11.171},
	// Values are published with a delay; months without a published value
	// stay zero. Those months are never referenced: the forecast splice
	// covers them with prior-year points carrying prior-year values.
	2025: {8.665, 7.654, 5.860, 3.145, 2.692, 3.356, 4.688, 4.851, 5.203, 0, 0, 0},
}

// Jahresmarktwert Solar in ct/kWh. The last entry is the preliminary value
// for the running year.
var yearlyMarketValues = map[int]float64{
	2021: 7.552,
	2022: 22.306,
	2023: 7.196,
	2024: 5.179,
	2025: 5.044,
}
