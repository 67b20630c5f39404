package store

import (
	"context"
	"testing"

	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store/storetest"
)

func seedUsuarios(t *testing.T) (*UsuarioStore, *storetest.Fake) {
	t.Helper()
	fake := storetest.New()
	fake.Seed("USUÁRIOS",
		[]string{"1", "Ana Silva", "", "ana@x.com", "Free", "", "11999990000", "contaAna"},
		[]string{"2", "Ana Silva", "ana_char1", "", "Free", "", "", "contaAna"},
		[]string{"5", "Bruno", "", "bruno@x.com", "Mensal", "01/09/2026", "", "contaBruno"},
		[]string{"abc", "Linha Quebrada", "quebrada", "", "", "", "", "contaBruno"},
	)
	return NewUsuarioStore(fake), fake
}

func TestUsuarioGetByID(t *testing.T) {
	s, _ := seedUsuarios(t)

	u, err := s.GetByID(context.Background(), "2")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u == nil {
		t.Fatal("expected usuario, got nil")
	}
	if u.Usuario != "ana_char1" {
		t.Errorf("usuario = %q, want %q", u.Usuario, "ana_char1")
	}
}

func TestUsuarioGetByIDNotFound(t *testing.T) {
	s, _ := seedUsuarios(t)

	u, err := s.GetByID(context.Background(), "999")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestUsuarioGetByUsuarioCaseInsensitive(t *testing.T) {
	s, _ := seedUsuarios(t)

	u, err := s.GetByUsuario(context.Background(), "ANA_Char1")
	if err != nil {
		t.Fatalf("get by usuario: %v", err)
	}
	if u == nil {
		t.Fatal("expected usuario, got nil")
	}
	if u.ID != "2" {
		t.Errorf("id = %q, want %q", u.ID, "2")
	}
}

func TestUsuarioGetByUsuarioSkipsParentRows(t *testing.T) {
	s, _ := seedUsuarios(t)

	// Parent rows have an empty usuario; an empty lookup must not match them.
	u, err := s.GetByUsuario(context.Background(), "")
	if err != nil {
		t.Fatalf("get by usuario: %v", err)
	}
	if u != nil {
		t.Error("empty username should never match")
	}
}

func TestUsuarioGetPai(t *testing.T) {
	s, _ := seedUsuarios(t)

	pai, err := s.GetPai(context.Background(), "CONTAANA")
	if err != nil {
		t.Fatalf("get pai: %v", err)
	}
	if pai == nil {
		t.Fatal("expected parent row, got nil")
	}
	if pai.ID != "1" {
		t.Errorf("id = %q, want %q (the row with empty usuario)", pai.ID, "1")
	}
}

func TestUsuarioGetPaiUnknown(t *testing.T) {
	s, _ := seedUsuarios(t)

	pai, err := s.GetPai(context.Background(), "naoExiste")
	if err != nil {
		t.Fatalf("get pai: %v", err)
	}
	if pai != nil {
		t.Error("expected nil for unknown account name")
	}
}

func TestUsuarioListFilhos(t *testing.T) {
	s, _ := seedUsuarios(t)

	filhos, err := s.ListFilhos(context.Background(), "contaAna")
	if err != nil {
		t.Fatalf("list filhos: %v", err)
	}
	if len(filhos) != 1 {
		t.Fatalf("len = %d, want 1 (parent row excluded)", len(filhos))
	}
	if filhos[0].Usuario != "ana_char1" {
		t.Errorf("usuario = %q, want %q", filhos[0].Usuario, "ana_char1")
	}
}

func TestUsuarioAddAssignsNextID(t *testing.T) {
	s, fake := seedUsuarios(t)

	u, err := s.Add(context.Background(), model.Usuario{
		Nome:       "Carlos",
		Usuario:    "carlos_char",
		UsuarioPai: "contaCarlos",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// Non-numeric ids are ignored when computing the next id.
	if u.ID != "6" {
		t.Errorf("id = %q, want %q", u.ID, "6")
	}
	if u.Plano != "Free" {
		t.Errorf("plano = %q, want %q", u.Plano, "Free")
	}

	table := fake.Table("USUÁRIOS")
	last := table[len(table)-1]
	if last[0] != "6" || last[2] != "carlos_char" {
		t.Errorf("appended row = %v", last)
	}
}

func TestUsuarioUpdatePartial(t *testing.T) {
	s, _ := seedUsuarios(t)

	email := "novo@x.com"
	u, err := s.Update(context.Background(), "2", UsuarioPatch{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u == nil {
		t.Fatal("expected updated usuario")
	}
	if u.Email != "novo@x.com" {
		t.Errorf("email = %q, want %q", u.Email, "novo@x.com")
	}
	if u.Nome != "Ana Silva" {
		t.Errorf("nome = %q, should be preserved", u.Nome)
	}
	if u.UsuarioPai != "contaAna" {
		t.Errorf("usuarioPai = %q, must never change on profile edits", u.UsuarioPai)
	}
}

func TestUsuarioUpdateNotFound(t *testing.T) {
	s, _ := seedUsuarios(t)

	nome := "x"
	u, err := s.Update(context.Background(), "999", UsuarioPatch{Nome: &nome})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestUsuarioUpdatePlano(t *testing.T) {
	s, fake := seedUsuarios(t)

	ok, err := s.UpdatePlano(context.Background(), "2", "Mensal", "30/09/2026")
	if err != nil {
		t.Fatalf("update plano: %v", err)
	}
	if !ok {
		t.Fatal("expected account to be found")
	}

	row := fake.Table("USUÁRIOS")[1]
	if row[4] != "Mensal" || row[5] != "30/09/2026" {
		t.Errorf("row = %v, want plano/expira updated in place", row)
	}
	if row[3] != "" || row[7] != "contaAna" {
		t.Errorf("row = %v, other columns must be preserved", row)
	}
}

func TestUsuarioUpdatePlanoUnknown(t *testing.T) {
	s, _ := seedUsuarios(t)

	ok, err := s.UpdatePlano(context.Background(), "999", "Mensal", "30/09/2026")
	if err != nil {
		t.Fatalf("update plano: %v", err)
	}
	if ok {
		t.Error("expected not found")
	}
}
