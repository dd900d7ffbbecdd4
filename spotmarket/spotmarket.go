// Package spotmarket parses the published German spot market price files
// ("Spotmarktpreis" exports, semicolon separated with decimal-comma numbers)
// into hourly price points with the remuneration baselines attached.
package spotmarket

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/angas/pv-revenue-go/convert"
	"github.com/angas/pv-revenue-go/hours"
	"github.com/angas/pv-revenue-go/types"
)

// The column layout the export always has. Anything else is a schema error.
var expectedColumns = []string{
	"Datum",
	"von",
	"Zeitzone von",
	"bis",
	"Zeitzone bis",
	"Spotmarktpreis in ct/kWh",
}

// Baselines are the fixed per-year remuneration constants attached to every
// price point of that year.
type Baselines struct {
	MonthlyMarketValues [12]float64 // Marktwert Solar, one entry per month
	YearlyMarketValue   float64     // Jahresmarktwert
	ReferenceValue      float64     // Anzulegender Wert
}

// SchemaError reports input that does not match the expected column layout.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected spot market file layout: %s", e.Reason)
}

// ParseError reports an unparsable timestamp or price value.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("spot market file line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads one calendar year of spot market prices. The result has exactly
// one point per input hour, strictly increasing, duplicates dropped.
func Parse(r io.Reader, baselines Baselines) ([]types.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = len(expectedColumns)

	header, err := cr.Read()
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("missing header row: %v", err)}
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var points []types.PricePoint
	seen := make(map[hours.DateHour]bool)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("line %d: %v", line, err)}
		}

		hour, err := hours.FromGerman(record[0], record[1])
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}

		price, err := convert.ParseGermanFloat(record[5])
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("bad price %q: %w", record[5], err)}
		}

		if seen[hour] {
			continue
		}
		seen[hour] = true

		points = append(points, types.PricePoint{
			Hour:               hour,
			Spot:               price,
			MarketValueMonthly: baselines.MonthlyMarketValues[int(hour.Month())-1],
			MarketValueYearly:  baselines.YearlyMarketValue,
			ReferenceValue:     baselines.ReferenceValue,
		})
	}

	slices.SortFunc(points, func(a, b types.PricePoint) int { return a.Hour.Compare(b.Hour) })

	return points, nil
}

func checkHeader(header []string) error {
	for i, want := range expectedColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return &SchemaError{
				Reason: fmt.Sprintf("column %d is %q, expected %q", i+1, header[i], want),
			}
		}
	}
	return nil
}
