package planos

import "testing"

func TestByID(t *testing.T) {
	p, ok := ByID("semanal")
	if !ok {
		t.Fatal("semanal should exist")
	}
	if p.Preco != 7.90 || p.Dias != 7 {
		t.Errorf("semanal = %+v", p)
	}

	if _, ok := ByID("vitalicio"); ok {
		t.Error("unknown plan id must not resolve")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	all[0].Preco = 0
	if p, _ := ByID(all[1].ID); p.Preco == 0 {
		t.Error("mutating the returned slice must not touch the catalog")
	}
	if p, _ := ByID("semanal"); p.Preco != 7.90 {
		t.Error("catalog mutated through All()")
	}
}
