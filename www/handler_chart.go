package www

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/report"
	"github.com/angas/pv-revenue-go/www/chartjs"
)

// NewChartHandler serves the grouped bar chart of specific revenues: one
// column group per year, one bar per (project, model) pair.
func NewChartHandler(logger *slog.Logger, projects *dataset.Store, builder *report.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		summary, err := builder.Build(projects.All())
		if err != nil {
			if errors.Is(err, report.ErrNoResults) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode([]chartjs.Chart{})
				return
			}
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		colIdx := make(map[string]int, len(summary.Columns))
		for i, col := range summary.Columns {
			colIdx[col] = i
		}

		chart := chartjs.NewBarChart("", summary.Columns)
		chart.WithAxisTitle("Spezifischer Erlös (ct/kWh)")

		series := make(map[string]int)
		for _, row := range summary.Chart {
			label := fmt.Sprintf("%s (%s)", row.Project, row.Model)
			idx, ok := series[label]
			if !ok {
				chart.AddDataset(label, make([]*float64, len(summary.Columns)))
				idx = len(chart.Data.Datasets) - 1
				series[label] = idx
			}
			chart.Data.Datasets[idx].Data[colIdx[row.Year]] = chartjs.FixedFloat64(row.Value, 2)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]chartjs.Chart{chart}); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode chart", http.StatusInternalServerError)
		}
	}
}
