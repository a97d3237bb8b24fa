package messaging

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/az3l1t/analysis-platform/pkg/analysis"
	"github.com/az3l1t/analysis-platform/pkg/common/logger"
	"github.com/az3l1t/analysis-platform/pkg/common/models"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/message/notification", h.handleNotification).Methods(http.MethodPost)
	router.HandleFunc("/message/{id}", h.handleSend).Methods(http.MethodPost)
}

func (h *HTTPHandler) handleSend(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.SendMessage(r.Context(), id); err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis result not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to send results message")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *HTTPHandler) handleNotification(w http.ResponseWriter, r *http.Request) {
	var notification models.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.service.SendNotification(r.Context(), notification)
	w.WriteHeader(http.StatusOK)
}
