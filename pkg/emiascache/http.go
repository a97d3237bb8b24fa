package emiascache

import (
	"encoding/json"
	"net/http"

	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/results/{id}", h.handleGet).Methods(http.MethodGet)
}

// handleGet responds with the cached record, or a null body when the key is
// missing or expired.
func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		logger.Log.WithError(err).Error("failed to read cached result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}
