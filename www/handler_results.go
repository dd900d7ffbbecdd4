package www

import (
	"errors"
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/report"
	"github.com/angas/pv-revenue-go/revenue"
	"github.com/angas/pv-revenue-go/types/maybe"
)

type resultsRow struct {
	Project string
	Cells   []maybe.Maybe[revenue.YearResult]
}

type resultsData struct {
	Columns []string
	Rows    []resultsRow
	Message string
}

// NewResultsHandler renders the pivoted yearly comparison: one row per
// project, one column per year plus the forecast column.
func NewResultsHandler(logger *slog.Logger, projects *dataset.Store, builder *report.Builder, tm *TemplateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		summary, err := builder.Build(projects.All())
		if err != nil {
			data := resultsData{Message: "Keine Ergebnisse berechenbar. Bitte Produktionsdaten hochladen oder Beispieldaten prüfen."}
			if !errors.Is(err, report.ErrNoResults) {
				logger.Error("building summary", slog.Any("error", err))
				data.Message = "Interner Fehler bei der Berechnung."
			}
			if err := tm.ExecuteToWriter("results.html", data, &w); err != nil {
				logger.Error("handling results request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		data := resultsData{Columns: summary.Columns}
		for _, row := range summary.Rows {
			cells := make([]maybe.Maybe[revenue.YearResult], len(summary.Columns))
			for i, col := range summary.Columns {
				if result, ok := row.Results[col]; ok {
					cells[i] = maybe.Some(result)
				} else {
					cells[i] = maybe.None[revenue.YearResult]()
				}
			}
			data.Rows = append(data.Rows, resultsRow{Project: row.Project, Cells: cells})
		}

		if err := tm.ExecuteToWriter("results.html", data, &w); err != nil {
			logger.Error("handling results request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
