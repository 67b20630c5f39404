package store

import (
	"context"
	"testing"

	"github.com/gerenciadormu/painel/internal/model"
	"github.com/gerenciadormu/painel/internal/store/storetest"
)

func TestAuthMacListRowIndexAndDefaultStatus(t *testing.T) {
	fake := storetest.New()
	fake.Seed("AUTHMAC",
		[]string{"ana_char1", "AA:BB:CC:DD:EE:01", model.MacAutorizado},
		[]string{"bruno_char", "AA:BB:CC:DD:EE:02"},
	)
	s := NewAuthMacStore(fake)

	macs, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(macs) != 2 {
		t.Fatalf("len = %d, want 2", len(macs))
	}
	if macs[0].RowIndex != 2 || macs[1].RowIndex != 3 {
		t.Errorf("row indexes = %d, %d; data starts at spreadsheet row 2", macs[0].RowIndex, macs[1].RowIndex)
	}
	if macs[0].Status != model.MacAutorizado {
		t.Errorf("status = %q, want %q", macs[0].Status, model.MacAutorizado)
	}
	if macs[1].Status != model.MacNaoAutorizado {
		t.Errorf("status = %q, missing cell defaults to %q", macs[1].Status, model.MacNaoAutorizado)
	}
}

func TestAuthMacUpdateStatusWritesOnlyStatusCell(t *testing.T) {
	fake := storetest.New()
	fake.Seed("AUTHMAC",
		[]string{"ana_char1", "AA:BB:CC:DD:EE:01", model.MacNaoAutorizado},
	)
	s := NewAuthMacStore(fake)

	if err := s.UpdateStatus(context.Background(), 2, model.MacAutorizado); err != nil {
		t.Fatalf("update status: %v", err)
	}

	row := fake.Table("AUTHMAC")[0]
	if row[2] != model.MacAutorizado {
		t.Errorf("status = %q, want %q", row[2], model.MacAutorizado)
	}
	if row[0] != "ana_char1" || row[1] != "AA:BB:CC:DD:EE:01" {
		t.Errorf("row = %v, usuario and mac must be untouched", row)
	}
}
