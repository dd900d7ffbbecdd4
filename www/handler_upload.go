package www

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/angas/pv-revenue-go/dataset"
)

const maxUploadBytes = 32 << 20

// NewUploadHandler accepts an xlsx production export and adds it to the
// project store. The project name defaults to the file name without its
// extension.
func NewUploadHandler(logger *slog.Logger, projects *dataset.Store, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "upload too large or malformed", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
		}
		if name == "" {
			http.Error(w, "project name is empty", http.StatusBadRequest)
			return
		}

		project, err := dataset.FromXLSX(file, name)
		if err != nil {
			logger.Warn("rejecting upload",
				slog.String("file", header.Filename),
				slog.Any("error", err))
			http.Error(w, "Die Datei konnte nicht gelesen werden: "+err.Error(), http.StatusBadRequest)
			return
		}

		projects.Put(project)
		s.saveSelectedProject(w, r, project.Name)
		logger.Info("dataset uploaded",
			slog.String("project", project.Name),
			slog.Int("hours", len(project.Series)))

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
