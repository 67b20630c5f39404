package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gerenciadormu/painel/internal/store"
)

type AuthHandler struct {
	usuarios *store.UsuarioStore
	logger   *slog.Logger
}

func NewAuthHandler(usuarios *store.UsuarioStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{usuarios: usuarios, logger: logger}
}

// Login resolves a parent account by its account name and returns it with
// every row registered under it.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UsuarioPai string `json:"usuarioPai"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UsuarioPai == "" {
		writeError(w, http.StatusBadRequest, "Usuário Pai é obrigatório")
		return
	}

	pai, err := h.usuarios.GetPai(r.Context(), req.UsuarioPai)
	if err != nil {
		h.logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	if pai == nil {
		writeError(w, http.StatusNotFound, "Conta não encontrada")
		return
	}

	usuarios, err := h.usuarios.ListByPai(r.Context(), req.UsuarioPai)
	if err != nil {
		h.logger.Error("login: listar usuários", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": pai, "usuarios": usuarios})
}
