package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gerenciadormu/painel/internal/format"
	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store"
)

type UsuarioHandler struct {
	usuarios *store.UsuarioStore
	logger   *slog.Logger
}

func NewUsuarioHandler(usuarios *store.UsuarioStore, logger *slog.Logger) *UsuarioHandler {
	return &UsuarioHandler{usuarios: usuarios, logger: logger}
}

type createUsuarioRequest struct {
	IsParent   bool   `json:"isParent"`
	Nome       string `json:"nome"`
	Usuario    string `json:"usuario"`
	Email      string `json:"email"`
	Whatsapp   string `json:"whatsapp"`
	UsuarioPai string `json:"usuarioPai"`
}

// Create registers a parent account (isParent) or a child profile under an
// existing parent.
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if req.UsuarioPai == "" {
		writeError(w, http.StatusBadRequest, "Usuário Pai é obrigatório")
		return
	}

	if req.IsParent {
		h.createParent(w, r, req)
		return
	}
	h.createChild(w, r, req)
}

func (h *UsuarioHandler) createParent(w http.ResponseWriter, r *http.Request, req createUsuarioRequest) {
	if req.Nome == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Nome e E-mail são obrigatórios")
		return
	}

	existing, err := h.usuarios.GetPai(r.Context(), req.UsuarioPai)
	if err != nil {
		h.logger.Error("criar conta", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Este nome de conta já está em uso")
		return
	}

	user, err := h.usuarios.Add(r.Context(), model.Usuario{
		Nome:       req.Nome,
		Usuario:    "",
		Email:      req.Email,
		Whatsapp:   format.SoDigitos(req.Whatsapp),
		UsuarioPai: req.UsuarioPai,
	})
	if err != nil {
		h.logger.Error("criar conta", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *UsuarioHandler) createChild(w http.ResponseWriter, r *http.Request, req createUsuarioRequest) {
	if req.Usuario == "" {
		writeError(w, http.StatusBadRequest, "Nome de Usuário é obrigatório")
		return
	}

	// Usernames are globally unique, not scoped to the parent.
	existing, err := h.usuarios.GetByUsuario(r.Context(), req.Usuario)
	if err != nil {
		h.logger.Error("criar usuário", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Este nome de usuário já está em uso")
		return
	}

	novo := model.Usuario{
		Nome:       req.Nome,
		Usuario:    req.Usuario,
		Email:      req.Email,
		Whatsapp:   format.SoDigitos(req.Whatsapp),
		UsuarioPai: req.UsuarioPai,
	}

	// Children inherit the parent's contact fields when not supplied.
	pai, err := h.usuarios.GetPai(r.Context(), req.UsuarioPai)
	if err != nil {
		h.logger.Error("criar usuário", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	if pai != nil {
		if novo.Nome == "" {
			novo.Nome = pai.Nome
		}
		if novo.Email == "" {
			novo.Email = pai.Email
		}
		if novo.Whatsapp == "" {
			novo.Whatsapp = pai.Whatsapp
		}
	}

	user, err := h.usuarios.Add(r.Context(), novo)
	if err != nil {
		h.logger.Error("criar usuário", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// Get returns one account by id.
func (h *UsuarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.usuarios.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("buscar usuário", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Update applies a partial profile edit. Absent fields keep their stored
// values; plan and account name are never touched here.
func (h *UsuarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nome     *string `json:"nome"`
		Usuario  *string `json:"usuario"`
		Email    *string `json:"email"`
		Whatsapp *string `json:"whatsapp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if req.Whatsapp != nil {
		limpo := format.SoDigitos(*req.Whatsapp)
		req.Whatsapp = &limpo
	}

	user, err := h.usuarios.Update(r.Context(), r.PathValue("id"), store.UsuarioPatch{
		Nome:     req.Nome,
		Usuario:  req.Usuario,
		Email:    req.Email,
		Whatsapp: req.Whatsapp,
	})
	if err != nil {
		h.logger.Error("atualizar usuário", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// ListByPai lists the child profiles of a parent account.
func (h *UsuarioHandler) ListByPai(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.usuarios.ListFilhos(r.Context(), r.PathValue("usuarioPai"))
	if err != nil {
		h.logger.Error("listar usuários", "error", err)
		writeError(w, http.StatusInternalServerError, msgErroInterno)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"usuarios": usuarios})
}
