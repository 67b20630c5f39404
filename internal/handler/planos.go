package handler

import (
	"net/http"

	"github.com/gerenciadormu/painel/internal/planos"
)

type PlanoHandler struct{}

func NewPlanoHandler() *PlanoHandler {
	return &PlanoHandler{}
}

// List returns the static plan catalog.
func (h *PlanoHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"planos": planos.All()})
}
