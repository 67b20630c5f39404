package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store"
)

type AuthMacHandler struct {
	authmacs *store.AuthMacStore
	usuarios *store.UsuarioStore
	logger   *slog.Logger
}

func NewAuthMacHandler(authmacs *store.AuthMacStore, usuarios *store.UsuarioStore, logger *slog.Logger) *AuthMacHandler {
	return &AuthMacHandler{authmacs: authmacs, usuarios: usuarios, logger: logger}
}

// ListByPai lists the device rows belonging to any child of a parent
// account. Devices are inserted by the game client on first connection;
// this layer only reads and toggles them.
func (h *AuthMacHandler) ListByPai(w http.ResponseWriter, r *http.Request) {
	filhos, err := h.usuarios.ListFilhos(r.Context(), r.PathValue("usuarioPai"))
	if err != nil {
		h.logger.Error("listar filhos", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	nomes := make(map[string]bool, len(filhos))
	for _, filho := range filhos {
		nomes[strings.ToLower(filho.Usuario)] = true
	}

	todos, err := h.authmacs.List(r.Context())
	if err != nil {
		h.logger.Error("listar dispositivos", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	macs := []model.AuthMac{}
	for _, mac := range todos {
		if nomes[strings.ToLower(mac.Usuario)] {
			macs = append(macs, mac)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"macs": macs})
}

// UpdateStatus toggles a device row by its spreadsheet position.
func (h *AuthMacHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RowIndex int    `json:"rowIndex"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RowIndex == 0 || req.Status == "" {
		writeError(w, http.StatusBadRequest, "rowIndex e status são obrigatórios")
		return
	}
	if req.Status != model.MacAutorizado && req.Status != model.MacNaoAutorizado {
		writeError(w, http.StatusBadRequest, "Status inválido")
		return
	}

	if err := h.authmacs.UpdateStatus(r.Context(), req.RowIndex, req.Status); err != nil {
		h.logger.Error("atualizar dispositivo", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
