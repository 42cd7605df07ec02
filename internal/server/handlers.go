package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/biblioteca/shelfmap/pkg/shelfmap"
	"github.com/biblioteca/shelfmap/pkg/shelfmap/models"
	"go.uber.org/zap"
)

// Error codes returned by /api/search.
const (
	codeMissingDewey = "missing_dewey"
	codeInvalidDewey = "invalid_dewey"
)

type searchResponse struct {
	Found    bool                   `json:"found"`
	Query    float64                `json:"query"`
	Location *models.LocationRecord `json:"location,omitempty"`
	BBox     *models.AreaOverlay    `json:"bbox,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("dewey"))
	if text == "" {
		text = strings.TrimSpace(r.URL.Query().Get("q"))
	}
	if text == "" {
		writeError(w, http.StatusBadRequest, codeMissingDewey, "dewey parameter is required")
		return
	}

	query, err := shelfmap.ParseQuery(text)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDewey, "dewey parameter contains no number")
		return
	}

	resp := searchResponse{Query: query}
	if m, ok := s.cache.Find(query, filtersFromRequest(r)); ok {
		resp.Found = true
		resp.Location = &m.Record
		resp.BBox = m.Overlay
	}
	s.log.Debug("search",
		zap.String("dewey", text),
		zap.Float64("query", query),
		zap.Bool("found", resp.Found))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) mapping(w http.ResponseWriter, r *http.Request) {
	snap := s.cache.Snapshot()
	writeJSON(w, http.StatusOK, shelfmap.FilterTable(snap.Table, filtersFromRequest(r)))
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	report := s.cache.Reload(r.Context())
	writeJSON(w, http.StatusOK, report)
}

func filtersFromRequest(r *http.Request) shelfmap.Filters {
	q := r.URL.Query()
	return shelfmap.Filters{
		ShelfUnits: shelfmap.ParseShelfUnits(q.Get("est")),
		Aisle:      strings.TrimSpace(q.Get("pasillo")),
		Side:       strings.TrimSpace(q.Get("lado")),
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
