package www

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	_ "embed"

	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/report"
	"github.com/angas/pv-revenue-go/revenue"
	"github.com/angas/pv-revenue-go/slice"
	"github.com/angas/pv-revenue-go/types"
)

type monthlyData struct {
	Projects []string
	Selected string
	Months   []revenue.MonthResult
	Message  string
}

// NewMonthlyHandler renders the forecast-year monthly breakdown for the
// selected project. A project query parameter switches the selection and is
// remembered in the session.
func NewMonthlyHandler(logger *slog.Logger, projects *dataset.Store, builder *report.Builder, tm *TemplateManager, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		all := projects.All()
		names := slice.Map(all, func(p types.Project) string { return p.Name })
		slices.SortFunc(names, strings.Compare)

		requested := r.URL.Query().Get("project")
		if requested == "" {
			requested = s.selectedProject(r)
		}

		selected, ok := report.SelectProject(all, requested)
		if !ok {
			data := monthlyData{Message: "Keine Projekte vorhanden."}
			if err := tm.ExecuteToWriter("monthly.html", data, &w); err != nil {
				logger.Error("handling monthly request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		s.saveSelectedProject(w, r, selected.Name)

		data := monthlyData{Projects: names, Selected: selected.Name}
		if months, ok := builder.MonthlyForecast(selected); ok {
			data.Months = months[:]
		} else {
			data.Message = "Für dieses Projekt liegt keine Vorjahresproduktion vor, daher keine Prognose."
		}

		if err := tm.ExecuteToWriter("monthly.html", data, &w); err != nil {
			logger.Error("handling monthly request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
