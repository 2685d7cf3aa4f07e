package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rescueline/dispatch-cli/internal/allocator"
	"github.com/rescueline/dispatch-cli/internal/livestatus"
	"github.com/rescueline/dispatch-cli/internal/model"
)

// Server exposes the dispatch flow over HTTP.
type Server struct {
	coordinator *Coordinator
	engine      *allocator.Engine
	status      *livestatus.Store
}

// NewServer creates a Server over an already-wired Coordinator.
func NewServer(coordinator *Coordinator, engine *allocator.Engine, status *livestatus.Store) *Server {
	return &Server{coordinator: coordinator, engine: engine, status: status}
}

// Router builds the HTTP handler. The rate limiter is process-global,
// not per-client; a single dispatcher console is the expected caller.
func (s *Server) Router(allowedOrigins []string, rps float64, burst int) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(rps), burst)))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/emergencies", s.handleCreateEmergency)
		r.Get("/emergencies", s.handleListEmergencies)
		r.Get("/emergencies/{id}", s.handleGetEmergency)
		r.Post("/emergencies/{id}/vitals", s.handleRecordVitals)
		r.Get("/emergencies/{id}/report", s.handleReport)
		r.Patch("/emergencies/{id}/status", s.handleUpdateStatus)

		r.Get("/facilities", s.handleListFacilities)
		r.Get("/facilities/{id}", s.handleGetFacility)
		r.Put("/facilities/{id}/status", s.handleUpdateFacilityStatus)
	})

	return r
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateEmergency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PickupLocation   model.Coordinate `json:"pickup_location"`
		PatientCondition string           `json:"patient_condition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientCondition == "" {
		writeError(w, http.StatusBadRequest, "patient_condition is required")
		return
	}

	emergency, err := s.coordinator.CreateEmergency(req.PickupLocation, req.PatientCondition)
	if err != nil {
		zap.L().Error("dispatch: create emergency failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, emergency)
}

func (s *Server) handleListEmergencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coordinator.Emergencies())
}

func (s *Server) handleGetEmergency(w http.ResponseWriter, r *http.Request) {
	emergency, err := s.coordinator.Emergency(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "emergency not found")
		return
	}
	writeJSON(w, http.StatusOK, emergency)
}

func (s *Server) handleRecordVitals(w http.ResponseWriter, r *http.Request) {
	var snapshot model.VitalsSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(snapshot) == 0 {
		writeError(w, http.StatusBadRequest, "at least one vital sign is required")
		return
	}

	emergency, err := s.coordinator.RecordVitals(chi.URLParam(r, "id"), snapshot)
	if err != nil {
		if eris.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "emergency not found")
			return
		}
		zap.L().Error("dispatch: record vitals failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, emergency)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.coordinator.Report(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "emergency not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.EmergencyStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emergency, err := s.coordinator.UpdateStatus(chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if eris.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "emergency not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, emergency)
}

// facilityView pairs a roster entry with its live status for API
// responses.
type facilityView struct {
	Facility model.Facility        `json:"facility"`
	Status   *model.FacilityStatus `json:"status,omitempty"`
}

func (s *Server) handleListFacilities(w http.ResponseWriter, r *http.Request) {
	snapshot := s.status.Snapshot()
	views := make([]facilityView, 0, len(s.engine.Roster()))
	for _, f := range s.engine.Roster() {
		view := facilityView{Facility: f}
		if status, ok := snapshot[f.ID]; ok {
			view.Status = &status
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetFacility(w http.ResponseWriter, r *http.Request) {
	facility, ok := s.engine.Facility(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "facility not found")
		return
	}

	view := facilityView{Facility: facility}
	if status, ok := s.status.Get(facility.ID); ok {
		view.Status = &status
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateFacilityStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.engine.Facility(id); !ok {
		writeError(w, http.StatusNotFound, "facility not found")
		return
	}

	var status model.FacilityStatus
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.status.Set(id, status)
	updated, _ := s.status.Get(id)
	writeJSON(w, http.StatusOK, facilityView{
		Facility: mustFacility(s.engine, id),
		Status:   &updated,
	})
}

func mustFacility(engine *allocator.Engine, id string) model.Facility {
	f, _ := engine.Facility(id)
	return f
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
