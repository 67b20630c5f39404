package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gerenciadormu/painel/internal/model"
)

const (
	usuariosRead   = "USUÁRIOS!A2:H"
	usuariosAppend = "USUÁRIOS!A:H"
)

type UsuarioStore struct {
	rows RowAPI
}

func NewUsuarioStore(rows RowAPI) *UsuarioStore {
	return &UsuarioStore{rows: rows}
}

func usuarioFromRow(row []string) model.Usuario {
	return model.Usuario{
		ID:         cell(row, 0),
		Nome:       cell(row, 1),
		Usuario:    cell(row, 2),
		Email:      cell(row, 3),
		Plano:      cell(row, 4),
		Expira:     cell(row, 5),
		Whatsapp:   cell(row, 6),
		UsuarioPai: cell(row, 7),
	}
}

func usuarioToRow(u model.Usuario) []string {
	return []string{u.ID, u.Nome, u.Usuario, u.Email, u.Plano, u.Expira, u.Whatsapp, u.UsuarioPai}
}

// List returns every account row.
func (s *UsuarioStore) List(ctx context.Context) ([]model.Usuario, error) {
	rows, err := s.rows.Rows(ctx, usuariosRead)
	if err != nil {
		return nil, fmt.Errorf("listar usuários: %w", err)
	}
	out := make([]model.Usuario, 0, len(rows))
	for _, row := range rows {
		out = append(out, usuarioFromRow(row))
	}
	return out, nil
}

// GetByID finds an account by its id. Returns nil when absent.
func (s *UsuarioStore) GetByID(ctx context.Context, id string) (*model.Usuario, error) {
	usuarios, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

// GetByUsuario finds a profile by username, case-insensitively. Parent rows
// (empty usuario) never match.
func (s *UsuarioStore) GetByUsuario(ctx context.Context, usuario string) (*model.Usuario, error) {
	usuarios, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		if u.Usuario != "" && strings.EqualFold(u.Usuario, usuario) {
			return &u, nil
		}
	}
	return nil, nil
}

// GetPai finds the parent row that claims the given account name: the row
// with an empty usuario whose usuarioPai matches case-insensitively.
func (s *UsuarioStore) GetPai(ctx context.Context, usuarioPai string) (*model.Usuario, error) {
	if usuarioPai == "" {
		return nil, nil
	}
	usuarios, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range usuarios {
		if u.Parent() && strings.EqualFold(u.UsuarioPai, usuarioPai) {
			return &u, nil
		}
	}
	return nil, nil
}

// ListByPai returns every row under an account name, parent row included.
func (s *UsuarioStore) ListByPai(ctx context.Context, usuarioPai string) ([]model.Usuario, error) {
	usuarios, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Usuario{}
	for _, u := range usuarios {
		if strings.EqualFold(u.UsuarioPai, usuarioPai) {
			out = append(out, u)
		}
	}
	return out, nil
}

// ListFilhos returns only the profiles (non-empty usuario) under an account.
func (s *UsuarioStore) ListFilhos(ctx context.Context, usuarioPai string) ([]model.Usuario, error) {
	todos, err := s.ListByPai(ctx, usuarioPai)
	if err != nil {
		return nil, err
	}
	out := []model.Usuario{}
	for _, u := range todos {
		if !u.Parent() {
			out = append(out, u)
		}
	}
	return out, nil
}

// Add appends a new account row. The id is one past the highest numeric id
// in the table; concurrent writers can race this read and collide, an
// accepted limitation of the storage. New accounts start on the Free plan.
func (s *UsuarioStore) Add(ctx context.Context, u model.Usuario) (*model.Usuario, error) {
	usuarios, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for _, existing := range usuarios {
		if n, err := strconv.Atoi(existing.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	u.ID = strconv.Itoa(maxID + 1)
	u.Plano = "Free"
	u.Expira = ""
	if err := s.rows.Append(ctx, usuariosAppend, usuarioToRow(u)); err != nil {
		return nil, fmt.Errorf("inserir usuário: %w", err)
	}
	return &u, nil
}

// UsuarioPatch carries the profile fields a partial update may change.
// Nil pointers leave the stored value untouched.
type UsuarioPatch struct {
	Nome     *string
	Usuario  *string
	Email    *string
	Whatsapp *string
}

// Update applies a partial profile update. Plan, expiry and the account name
// are never touched by this path. Returns nil when the id is unknown.
func (s *UsuarioStore) Update(ctx context.Context, id string, patch UsuarioPatch) (*model.Usuario, error) {
	rows, err := s.rows.Rows(ctx, usuariosRead)
	if err != nil {
		return nil, fmt.Errorf("listar usuários: %w", err)
	}
	for i, row := range rows {
		if cell(row, 0) != id {
			continue
		}
		u := usuarioFromRow(row)
		if patch.Nome != nil {
			u.Nome = *patch.Nome
		}
		if patch.Usuario != nil {
			u.Usuario = *patch.Usuario
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.Whatsapp != nil {
			u.Whatsapp = *patch.Whatsapp
		}
		n := i + 2
		rng := fmt.Sprintf("USUÁRIOS!A%d:H%d", n, n)
		if err := s.rows.Update(ctx, rng, usuarioToRow(u)); err != nil {
			return nil, fmt.Errorf("atualizar usuário %s: %w", id, err)
		}
		return &u, nil
	}
	return nil, nil
}

// UpdatePlano sets the plan and its absolute expiry date on an account.
// Reports whether the account existed.
func (s *UsuarioStore) UpdatePlano(ctx context.Context, id, plano, expira string) (bool, error) {
	rows, err := s.rows.Rows(ctx, usuariosRead)
	if err != nil {
		return false, fmt.Errorf("listar usuários: %w", err)
	}
	for i, row := range rows {
		if cell(row, 0) != id {
			continue
		}
		u := usuarioFromRow(row)
		u.Plano = plano
		u.Expira = expira
		n := i + 2
		rng := fmt.Sprintf("USUÁRIOS!A%d:H%d", n, n)
		if err := s.rows.Update(ctx, rng, usuarioToRow(u)); err != nil {
			return false, fmt.Errorf("atualizar plano do usuário %s: %w", id, err)
		}
		return true, nil
	}
	return false, nil
}
