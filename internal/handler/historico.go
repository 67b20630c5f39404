package handler

import (
	"log/slog"
	"net/http"

	"github.com/gerenciadormu/painel/internal/store"
)

type HistoricoHandler struct {
	historico *store.HistoricoStore
	logger    *slog.Logger
}

func NewHistoricoHandler(historico *store.HistoricoStore, logger *slog.Logger) *HistoricoHandler {
	return &HistoricoHandler{historico: historico, logger: logger}
}

// ListByUsuario returns the login history of one profile.
func (h *HistoricoHandler) ListByUsuario(w http.ResponseWriter, r *http.Request) {
	historico, err := h.historico.ListByUsuario(r.Context(), r.PathValue("usuario"))
	if err != nil {
		h.logger.Error("listar histórico", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"historico": historico})
}
