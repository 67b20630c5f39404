// Package planos holds the static subscription plan catalog.
package planos

import "github.com/gerenciadormu/painel/internal/model"

var catalogo = []model.Plano{
	{ID: "semanal", Nome: "Semanal", Descricao: "Acesso completo por 7 dias", Preco: 7.90, Dias: 7},
	{ID: "mensal", Nome: "Mensal", Descricao: "Acesso completo por 30 dias", Preco: 29.90, Dias: 30},
	{ID: "trimestral", Nome: "Trimestral", Descricao: "Acesso completo por 90 dias", Preco: 74.90, Dias: 90},
	{ID: "semestral", Nome: "Semestral", Descricao: "Acesso completo por 180 dias", Preco: 134.90, Dias: 180},
	{ID: "anual", Nome: "Anual", Descricao: "Acesso completo por 365 dias", Preco: 239.90, Dias: 365},
}

// All returns the full catalog.
func All() []model.Plano {
	out := make([]model.Plano, len(catalogo))
	copy(out, catalogo)
	return out
}

// ByID looks a plan up by its identifier.
func ByID(id string) (model.Plano, bool) {
	for _, p := range catalogo {
		if p.ID == id {
			return p, true
		}
	}
	return model.Plano{}, false
}
