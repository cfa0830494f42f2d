package backup

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
)

type BackupHandler struct {
	service *Service
}

func NewBackupHandler(service *Service) *BackupHandler {
	return &BackupHandler{service: service}
}

func (h *BackupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	name, err := h.service.Create()
	if err != nil {
		http.Error(w, "Failed to create backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"fileName": name})
}

func (h *BackupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	backups, err := h.service.List()
	if err != nil {
		http.Error(w, "Failed to list backups", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(backups); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BackupHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "fileName")
	if err := h.service.Restore(name); err != nil {
		if errors.Is(err, ErrBackupNotFound) {
			http.Error(w, "Backup not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to restore backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Backup restored"})
}

func (h *BackupHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "fileName")
	data, err := h.service.Download(name)
	if err != nil {
		if errors.Is(err, ErrBackupNotFound) {
			http.Error(w, "Backup not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to download backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.Write(data)
}

func (h *BackupHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "fileName")
	if err := h.service.Delete(name); err != nil {
		if errors.Is(err, ErrBackupNotFound) {
			http.Error(w, "Backup not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete backup", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
