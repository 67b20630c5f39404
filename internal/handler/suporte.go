package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gerenciadormu/painel/internal/format"
	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store"
)

type SuporteHandler struct {
	suporte *store.SuporteStore
	logger  *slog.Logger
	now     func() time.Time
}

func NewSuporteHandler(suporte *store.SuporteStore, logger *slog.Logger) *SuporteHandler {
	return &SuporteHandler{suporte: suporte, logger: logger, now: time.Now}
}

// Create appends a support ticket row.
func (h *SuporteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UsuarioPai string `json:"usuarioPai"`
		Assunto    string `json:"assunto"`
		Descricao  string `json:"descricao"`
		Contato    string `json:"contato"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Assunto == "" || req.Descricao == "" {
		writeError(w, http.StatusBadRequest, "Assunto e descrição são obrigatórios")
		return
	}

	t := model.Suporte{
		Data:       format.DataHoraBR(h.now()),
		UsuarioPai: req.UsuarioPai,
		Assunto:    req.Assunto,
		Descricao:  req.Descricao,
		Contato:    req.Contato,
	}
	if err := h.suporte.Add(r.Context(), t); err != nil {
		h.logger.Error("registrar suporte", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao enviar mensagem")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
