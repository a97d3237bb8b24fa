package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/emias"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the result routes; the passed router is expected to carry
// the /api prefix and the authentication middleware.
func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/result", h.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/result", h.handleUpdate).Methods(http.MethodPut)
	router.HandleFunc("/result", h.handleList).Methods(http.MethodGet)
	router.HandleFunc("/result/confirm/{id}", h.handleConfirm).Methods(http.MethodPut)
	router.HandleFunc("/result/external/{id}", h.handleExternal).Methods(http.MethodGet)
	router.HandleFunc("/result/{id}", h.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/result/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *HTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var dto CreateInResult
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if dto.PatientID == nil || dto.DoctorID == nil {
		http.Error(w, "patientId and doctorId are required", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		logger.Log.WithError(err).Error("failed to create analysis result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, GetOutFrom(created))
}

func (h *HTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var dto UpdateInResult
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if dto.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "analysis result not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to update analysis result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, UpdateOutFrom(updated))
}

func (h *HTTPHandler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.ConfirmAnalysisResult(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "analysis result not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to confirm analysis result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleGet keeps the legacy contract: a miss responds 200 with a null body
// rather than 404.
func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		logger.Log.WithError(err).Error("failed to fetch analysis result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := parseQueryInt(r, "page", 0)
	if err != nil || page < 0 {
		http.Error(w, "invalid page parameter", http.StatusBadRequest)
		return
	}
	size, err := parseQueryInt(r, "size", 10)
	if err != nil || size < 1 {
		http.Error(w, "invalid size parameter", http.StatusBadRequest)
		return
	}

	results, err := h.service.GetAll(r.Context(), page, size)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list analysis results")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *HTTPHandler) handleExternal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.GetConfirmedResults(r.Context(), id)
	if err != nil {
		var statusErr *emias.StatusError
		if errors.As(err, &statusErr) {
			http.Error(w, "emias request failed", statusErr.StatusCode)
			return
		}
		logger.Log.WithError(err).Error("failed to fetch external result")
		http.Error(w, "emias unavailable", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		logger.Log.WithError(err).Error("failed to delete analysis result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func parseQueryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
