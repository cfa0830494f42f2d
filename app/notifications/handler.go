package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/Mostafalol1233/resturant/models"
)

type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotificationProvider interface {
	GetNotifications(userID string) ([]models.Notification, error)
	Create(notification *models.Notification) error
	MarkAsRead(id uint) error
}

type NotificationsHandler struct {
	repo NotificationProvider
}

func NewNotificationsHandler(r NotificationProvider) *NotificationsHandler {
	return &NotificationsHandler{repo: r}
}

func toNotification(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func (h *NotificationsHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetNotifications(r.URL.Query().Get("userId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	notifications := make([]NotificationResponse, len(res))
	for i, n := range res {
		notifications[i] = toNotification(n)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(notifications); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *NotificationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID  string `json:"userId"`
		Title   string `json:"title"`
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		http.Error(w, "Missing notification title", http.StatusBadRequest)
		return
	}
	if input.Type == "" {
		input.Type = "info"
	}

	notification := &models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    input.Type,
	}
	if err := h.repo.Create(notification); err != nil {
		http.Error(w, "Failed to create notification", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toNotification(*notification))
}

func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid notification id", http.StatusBadRequest)
		return
	}

	if err := h.repo.MarkAsRead(uint(id)); err != nil {
		if errors.Is(err, models.ErrNotificationNotFound) {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
