// Package api exposes HTTP handlers for workout summaries.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/persistence"
)

const maxPageSize = 100

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service  *domain.Service
	pageSize int
}

// NewHandler builds a Handler. pageSize is the list limit used when the request sets none.
func NewHandler(service *domain.Service, pageSize int) *Handler {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = 20
	}
	return &Handler{service: service, pageSize: pageSize}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/workouts", h.workouts)
	mux.HandleFunc("/v1/workouts/preview", h.preview)
	mux.HandleFunc("/v1/workouts/", h.workoutByID)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) workouts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.recordWorkout(w, r)
	case http.MethodGet:
		h.listWorkouts(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) workoutByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/workouts/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing workout id")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	h.getWorkout(w, r, id)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if _, ok := authorize(w, r, auth.ActionPreview); !ok {
		return
	}

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	info, err := h.service.Compute(req.WorkoutType, req.Data)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PreviewResponse{
		TrainingType:  info.TrainingType,
		DurationHours: info.Duration,
		DistanceKm:    info.Distance,
		MeanSpeedKmh:  info.Speed,
		Calories:      info.Calories,
		Message:       info.Message(),
	})
}

func (h *Handler) recordWorkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := authorize(w, r, auth.ActionRecord)
	if !ok {
		return
	}

	var req RecordWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	summary, err := h.service.Record(r.Context(), domain.RecordInput{
		TenantID:    claims.TenantID,
		UserID:      req.UserID,
		WorkoutType: req.WorkoutType,
		Data:        req.Data,
		Source:      "api",
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSummaryView(*summary))
}

func (h *Handler) getWorkout(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := authorize(w, r, auth.ActionRead)
	if !ok {
		return
	}

	summary, err := h.service.Get(r.Context(), claims.TenantID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryView(*summary))
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	claims, ok := authorize(w, r, auth.ActionRead)
	if !ok {
		return
	}

	userID := r.URL.Query().Get("user_id")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing user_id parameter")
		return
	}

	limit := h.pageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxPageSize)
		}
	}

	cursor, err := persistence.DecodePageToken(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	summaries, next, err := h.service.ListByUser(r.Context(), claims.TenantID, userID, cursor, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]SummaryView, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, toSummaryView(s))
	}
	writeJSON(w, http.StatusOK, ListWorkoutsResponse{
		Items:      items,
		NextCursor: persistence.EncodePageToken(next),
	})
}

func authorize(w http.ResponseWriter, r *http.Request, action auth.Action) (*auth.Claims, bool) {
	claims, err := auth.Authorize(r.Context(), action)
	switch {
	case err == nil:
		return claims, true
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	}
	return nil, false
}

// PreviewRequest is the payload for POST /v1/workouts/preview.
type PreviewRequest struct {
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// Validate ensures request correctness.
func (r PreviewRequest) Validate() error {
	if strings.TrimSpace(r.WorkoutType) == "" {
		return errors.New("workout_type is required")
	}
	if len(r.Data) == 0 {
		return errors.New("data is required")
	}
	return nil
}

// RecordWorkoutRequest is the payload for POST /v1/workouts.
type RecordWorkoutRequest struct {
	UserID      string    `json:"user_id"`
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// Validate ensures request correctness.
func (r RecordWorkoutRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	return PreviewRequest{WorkoutType: r.WorkoutType, Data: r.Data}.Validate()
}

// PreviewResponse describes computed metrics that were not stored.
type PreviewResponse struct {
	TrainingType  string  `json:"training_type"`
	DurationHours float64 `json:"duration_hours"`
	DistanceKm    float64 `json:"distance_km"`
	MeanSpeedKmh  float64 `json:"mean_speed_kmh"`
	Calories      float64 `json:"calories"`
	Message       string  `json:"message"`
}

// SummaryView exposes a stored workout summary.
type SummaryView struct {
	SummaryID     string    `json:"summary_id"`
	TenantID      string    `json:"tenant_id"`
	UserID        string    `json:"user_id"`
	WorkoutType   string    `json:"workout_type"`
	Data          []float64 `json:"data"`
	TrainingType  string    `json:"training_type"`
	DurationHours float64   `json:"duration_hours"`
	DistanceKm    float64   `json:"distance_km"`
	MeanSpeedKmh  float64   `json:"mean_speed_kmh"`
	Calories      float64   `json:"calories"`
	Message       string    `json:"message"`
	Source        string    `json:"source"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// ListWorkoutsResponse packages list results.
type ListWorkoutsResponse struct {
	Items      []SummaryView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsRejected(err):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrSummaryNotFound):
		writeError(w, http.StatusNotFound, "not_found", "workout summary not found")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{
		"type":   code,
		"detail": detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toSummaryView(s domain.Summary) SummaryView {
	return SummaryView{
		SummaryID:     s.ID,
		TenantID:      s.TenantID,
		UserID:        s.UserID,
		WorkoutType:   s.WorkoutType,
		Data:          s.Data,
		TrainingType:  s.TrainingType,
		DurationHours: s.DurationHours,
		DistanceKm:    s.DistanceKm,
		MeanSpeedKmh:  s.MeanSpeedKmh,
		Calories:      s.Calories,
		Message:       s.Message,
		Source:        s.Source,
		RecordedAt:    s.RecordedAt,
	}
}
