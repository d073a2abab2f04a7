package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// BackupService defines the behavior needed by BackupHandler.
type BackupService interface {
	Export(ctx context.Context) (*domain.Backup, error)
	Import(ctx context.Context, backup *domain.Backup) (*usecase.ImportResult, error)
}

// BackupHandler handles backup export and import. The wire format is the
// domain.Backup JSON shape, so exported files feed straight back into
// import.
type BackupHandler struct {
	backupUC BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupUC BackupService) *BackupHandler {
	return &BackupHandler{backupUC: backupUC}
}

// Export returns a full snapshot of the ledger.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backupUC.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export backup", err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="finances-backup.json"`)
	writeJSON(w, http.StatusOK, backup)
}

// Import replaces the entire ledger with the posted snapshot.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var backup domain.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		writeError(w, http.StatusBadRequest, "invalid backup payload", err.Error())
		return
	}

	result, err := h.backupUC.Import(r.Context(), &backup)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to import backup", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ImportResultFromUseCase(result))
}
