package convert

import (
	"math"
	"strconv"
	"strings"
)

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

// ParseGermanFloat parses a decimal-comma formatted number, e.g. "-1,23".
// The spot market price files use this locale format.
func ParseGermanFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
