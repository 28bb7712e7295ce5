package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nss-cli/internal/geo"
	"github.com/sells-group/nss-cli/internal/model"
	"github.com/sells-group/nss-cli/internal/projection"
	"github.com/sells-group/nss-cli/internal/registry"
	"github.com/sells-group/nss-cli/internal/scenario"
	"github.com/sells-group/nss-cli/internal/scorer"
	"github.com/sells-group/nss-cli/internal/store"
)

// DefaultYear is used when a request omits ?year=.
const DefaultYear = 2050

// MaxYear bounds ?year= from above.
const MaxYear = 2100

// Handlers contains HTTP handlers and their dependencies.
type Handlers struct {
	Scenarios  *registry.ScenarioRegistry
	Regions    *registry.RegionRegistry
	Projector  *projection.Projector
	Modeler    *scenario.Modeler
	Scorer     *scorer.Scorer
	Boundaries map[string]geo.Boundary

	// Store is optional; the /api/runs routes are mounted only when set.
	Store store.Store
}

// NewHandlers wires handlers over the projector's registries. Boundaries and
// st may be nil.
func NewHandlers(p *projection.Projector, m *scenario.Modeler, sc *scorer.Scorer, boundaries map[string]geo.Boundary, st store.Store) *Handlers {
	return &Handlers{
		Scenarios:  p.Scenarios,
		Regions:    p.Regions,
		Projector:  p,
		Modeler:    m,
		Scorer:     sc,
		Boundaries: boundaries,
		Store:      st,
	}
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListScenarios handles GET /api/scenarios?category=core|stress.
func (h *Handlers) ListScenarios(w http.ResponseWriter, r *http.Request) {
	var out []model.Scenario
	switch cat := r.URL.Query().Get("category"); model.Category(cat) {
	case "":
		out = h.Scenarios.Scenarios
	case model.CategoryCore:
		out = h.Scenarios.Core()
	case model.CategoryStress:
		out = h.Scenarios.Stress()
	default:
		writeError(w, http.StatusBadRequest, "unknown category "+strconv.Quote(cat))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": out,
		"count":     len(out),
	})
}

// GetScenario handles GET /api/scenarios/{id}.
func (h *Handlers) GetScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := h.scenario(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario": s,
		"path":     h.Modeler.Path(s, registry.MilestoneYears),
	})
}

// ListRegions handles GET /api/regions.
func (h *Handlers) ListRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"regions": h.Regions.Regions,
		"count":   len(h.Regions.Regions),
	})
}

// ListProjections handles GET /api/projections?scenario=&year=. Without a
// scenario every scenario is projected.
func (h *Handlers) ListProjections(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}
	ids := h.Scenarios.IDs()
	if id := r.URL.Query().Get("scenario"); id != "" {
		s, ok := h.scenario(w, id)
		if !ok {
			return
		}
		ids = []model.ScenarioID{s.ID}
	}

	rows, err := h.Projector.Grid(ids, []int{year})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"year":        year,
		"projections": rows,
		"totals":      projection.Aggregate(rows),
		"count":       len(rows),
	})
}

// National handles GET /api/national?year=.
func (h *Handlers) National(w http.ResponseWriter, r *http.Request) {
	year, ok := h.year(w, r)
	if !ok {
		return
	}
	rows := h.Modeler.Compare(h.Scenarios.Scenarios, year)
	resp := map[string]any{
		"year":      year,
		"scenarios": rows,
		"ranges":    scenario.ComputeRanges(rows),
	}
	if exp, err := h.Modeler.Expected(h.Scenarios.Core(), year); err == nil {
		resp["expected"] = exp
	}
	writeJSON(w, http.StatusOK, resp)
}

// Risk handles GET /api/risk?scenario=a,b.
func (h *Handlers) Risk(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.scenarioList(w, r)
	if !ok {
		return
	}
	hm := h.Scorer.RiskHeatmap(h.Regions.Regions, ids)
	writeHeatmap(w, hm, h.Scorer.Highlights(hm))
}

// Opportunity handles GET /api/opportunity?scenario=a,b.
func (h *Handlers) Opportunity(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.scenarioList(w, r)
	if !ok {
		return
	}
	hm := h.Scorer.OpportunityHeatmap(h.Regions.Regions, ids)
	writeHeatmap(w, hm, h.Scorer.Highlights(hm))
}

// Map handles GET /api/map/{scenario}?year= and returns GeoJSON.
func (h *Handlers) Map(w http.ResponseWriter, r *http.Request) {
	s, ok := h.scenario(w, chi.URLParam(r, "scenario"))
	if !ok {
		return
	}
	year, ok := h.year(w, r)
	if !ok {
		return
	}
	rows, err := h.Projector.ProjectAll(s.ID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(geo.RegionFeatures(h.Regions.Regions, rows, h.Boundaries)); err != nil {
		zap.L().Warn("api: encode geojson", zap.Error(err))
	}
}

// ListRuns handles GET /api/runs?status=&limit=.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.RunFilter{Status: model.RunStatus(q.Get("status"))}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit "+strconv.Quote(v))
			return
		}
		filter.Limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

// GetRun handles GET /api/runs/{id}.
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// RunProjections handles GET /api/runs/{id}/projections?scenario=&year=.
func (h *Handlers) RunProjections(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.Store.GetRun(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	filter := store.ProjectionFilter{Scenario: model.ScenarioID(r.URL.Query().Get("scenario"))}
	if r.URL.Query().Get("year") != "" {
		year, ok := h.year(w, r)
		if !ok {
			return
		}
		filter.Year = year
	}

	rows, err := h.Store.ListProjections(r.Context(), id, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projections": rows, "count": len(rows)})
}

func (h *Handlers) scenario(w http.ResponseWriter, id string) (model.Scenario, bool) {
	s, err := h.Scenarios.Get(model.ScenarioID(id))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown scenario "+strconv.Quote(id))
		return model.Scenario{}, false
	}
	return s, true
}

// scenarioList parses ?scenario=a,b; absent means all scenarios.
func (h *Handlers) scenarioList(w http.ResponseWriter, r *http.Request) ([]model.ScenarioID, bool) {
	v := r.URL.Query().Get("scenario")
	if v == "" {
		return h.Scenarios.IDs(), true
	}
	var ids []model.ScenarioID
	for _, part := range strings.Split(v, ",") {
		s, ok := h.scenario(w, strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		ids = append(ids, s.ID)
	}
	return ids, true
}

func (h *Handlers) year(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return DefaultYear, true
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < h.Projector.BaseYear || year > MaxYear {
		writeError(w, http.StatusBadRequest, "year must be an integer between "+
			strconv.Itoa(h.Projector.BaseYear)+" and "+strconv.Itoa(MaxYear))
		return 0, false
	}
	return year, true
}

func writeHeatmap(w http.ResponseWriter, hm model.Heatmap, highlights []model.Highlight) {
	means := make(map[model.ScenarioID]float64, len(hm.Scenarios))
	for i, id := range hm.Scenarios {
		means[id] = hm.ColumnMean(i)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"heatmap":        hm,
		"highlights":     highlights,
		"scenario_means": means,
	})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
