// Package report rolls per-(project, year) revenue figures into the pivoted
// yearly summary, the chart-ready long-form table and the forecast-year
// monthly breakdown consumed by the presentation layer.
package report

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/angas/pv-revenue-go/forecast"
	"github.com/angas/pv-revenue-go/production"
	"github.com/angas/pv-revenue-go/refdata"
	"github.com/angas/pv-revenue-go/revenue"
	"github.com/angas/pv-revenue-go/types"
)

// ForecastLabel is the column label of the synthetic forecast year.
const ForecastLabel = "Forecast"

// Display names of the three remuneration models.
const (
	ModelSpot        = "Spotmarkt"
	ModelMarketValue = "Marktwert"
	ModelPremium     = "Marktprämie"
)

// ErrNoResults signals that not a single (project, year) pair could be
// computed. Presentation surfaces it as one descriptive message instead of
// rendering an empty table as success.
var ErrNoResults = errors.New("no revenue results could be computed")

// ProjectRow is one pivot row: a project with its specific revenue per
// column label (year or Forecast).
type ProjectRow struct {
	Project string
	Results map[string]revenue.YearResult
}

// ChartRow is one long-form record for the grouped bar chart.
type ChartRow struct {
	Project string
	Year    string
	Model   string
	Value   float64
}

// Summary is everything the yearly comparison view needs.
type Summary struct {
	Columns []string
	Rows    []ProjectRow
	Chart   []ChartRow
}

type Builder struct {
	logger       *slog.Logger
	ref          *refdata.Reference
	forecastYear int
}

func NewBuilder(logger *slog.Logger, ref *refdata.Reference, forecastYear int) *Builder {
	return &Builder{logger: logger, ref: ref, forecastYear: forecastYear}
}

// Build computes the yearly summary for all given projects. Years without
// reference data, pairs without overlap and projects without prior-year
// production for the forecast are skipped, each with a logged reason; only a
// completely empty outcome is an error.
func (b *Builder) Build(projects []types.Project) (*Summary, error) {
	if len(projects) == 0 {
		return nil, ErrNoResults
	}

	summary := &Summary{}
	seenProjects := make(map[string]bool)
	columns := make(map[string]bool)

	sorted := slices.Clone(projects)
	slices.SortFunc(sorted, func(a, b types.Project) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, project := range sorted {
		if seenProjects[project.Name] {
			b.logger.Warn("duplicate project name, skipping", slog.String("project", project.Name))
			continue
		}
		seenProjects[project.Name] = true

		row := ProjectRow{Project: project.Name, Results: make(map[string]revenue.YearResult)}

		for _, year := range production.Years(project.Series) {
			if year == b.forecastYear {
				continue // only reachable through the synthetic series below
			}
			prices, err := b.ref.PricesForYear(year)
			if err != nil {
				b.logger.Info("skipping year without reference prices",
					slog.String("project", project.Name), slog.Int("year", year))
				continue
			}
			merged := revenue.Merge(production.FilterYear(project.Series, year), prices)
			result, ok := revenue.Calculate(merged)
			if !ok {
				b.logger.Info("skipping year without overlapping production",
					slog.String("project", project.Name), slog.Int("year", year))
				continue
			}
			label := strconv.Itoa(year)
			row.Results[label] = result
			columns[label] = true
		}

		if merged, ok := b.forecastMerged(project); ok {
			if result, ok := revenue.Calculate(merged); ok {
				row.Results[ForecastLabel] = result
				columns[ForecastLabel] = true
			}
		}

		if len(row.Results) > 0 {
			summary.Rows = append(summary.Rows, row)
		}
	}

	if len(summary.Rows) == 0 {
		return nil, ErrNoResults
	}

	summary.Columns = sortColumns(columns)
	summary.Chart = chartRows(summary)

	return summary, nil
}

// MonthlyForecast computes the forecast-year month-by-month breakdown for
// one project. ok is false when the project has no prior-year production or
// the forecast prices are unavailable.
func (b *Builder) MonthlyForecast(project types.Project) ([12]revenue.MonthResult, bool) {
	merged, ok := b.forecastMerged(project)
	if !ok {
		return [12]revenue.MonthResult{}, false
	}
	if len(merged) == 0 {
		return [12]revenue.MonthResult{}, false
	}
	return revenue.MonthlyBreakdown(merged), true
}

// forecastMerged joins the synthetic forecast-year production and price
// series of a project.
func (b *Builder) forecastMerged(project types.Project) ([]types.MergedPoint, bool) {
	priorYear := b.forecastYear - 1

	synthProd := forecast.SynthesizeProduction(production.FilterYear(project.Series, priorYear))
	if synthProd == nil {
		b.logger.Info("skipping forecast, no prior-year production",
			slog.String("project", project.Name), slog.Int("priorYear", priorYear))
		return nil, false
	}

	partial, err := b.ref.PricesForYear(b.forecastYear)
	if err != nil {
		b.logger.Warn("skipping forecast, no partial-year prices",
			slog.Int("year", b.forecastYear))
		return nil, false
	}
	prior, err := b.ref.PricesForYear(priorYear)
	if err != nil {
		b.logger.Warn("skipping forecast, no prior-year prices",
			slog.Int("year", priorYear))
		return nil, false
	}

	synthPrices := forecast.SynthesizePrices(partial, prior)
	return revenue.Merge(synthProd, synthPrices), true
}

// SelectProject validates a selection against the available projects and
// falls back to the first (name-sorted) project when it is stale or empty.
func SelectProject(projects []types.Project, name string) (types.Project, bool) {
	if len(projects) == 0 {
		return types.Project{}, false
	}

	sorted := slices.Clone(projects)
	slices.SortFunc(sorted, func(a, b types.Project) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, p := range sorted {
		if p.Name == name {
			return p, true
		}
	}
	return sorted[0], true
}

func sortColumns(set map[string]bool) []string {
	var years []string
	hasForecast := false
	for label := range set {
		if label == ForecastLabel {
			hasForecast = true
			continue
		}
		years = append(years, label)
	}
	slices.Sort(years)
	if hasForecast {
		years = append(years, ForecastLabel)
	}
	return years
}

func chartRows(summary *Summary) []ChartRow {
	var rows []ChartRow
	for _, row := range summary.Rows {
		for _, label := range summary.Columns {
			result, ok := row.Results[label]
			if !ok {
				continue
			}
			rows = append(rows,
				ChartRow{Project: row.Project, Year: label, Model: ModelSpot, Value: result.SpotMarket},
				ChartRow{Project: row.Project, Year: label, Model: ModelMarketValue, Value: result.MarketValue},
				ChartRow{Project: row.Project, Year: label, Model: ModelPremium, Value: result.MarketPremium})
		}
	}
	return rows
}
