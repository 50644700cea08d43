package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/etender-service/internal/models"
	"github.com/senyabanana/etender-service/internal/services"
	"github.com/senyabanana/etender-service/internal/utils"
)

// NotificationHandler - структура для обработки HTTP-запросов по уведомлениям.
type NotificationHandler struct {
	Service *services.NotificationService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewNotificationHandler создаёт новый экземпляр NotificationHandler.
func NewNotificationHandler(service *services.NotificationService, logger *log.Logger, timeout time.Duration) *NotificationHandler {
	return &NotificationHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetNotifications обрабатывает запросы для вывода уведомлений получателя.
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	actorType := models.ActorType(r.URL.Query().Get("actorType"))
	actorId := r.URL.Query().Get("actorId")

	notifications, err := h.Service.DeriveNotifications(ctx, actorType, actorId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to derive notifications")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(notifications); err != nil {
		h.Logger.Println(err)
	}
}
