package substate

import (
	"testing"

	"github.com/evmhost/evmhost/types"
)

func TestNew_Empty(t *testing.T) {
	s := New()
	if len(s.ContractsCreated) != 0 || len(s.Logs) != 0 || len(s.Suicides) != 0 || s.SstoreClearsCount != 0 {
		t.Fatal("New() should produce a zeroed substate")
	}
}

func TestAddCreatedContract_Order(t *testing.T) {
	s := New()
	a := types.HexToAddress("0x01")
	b := types.HexToAddress("0x02")
	s.AddCreatedContract(a)
	s.AddCreatedContract(b)
	if s.ContractsCreated[0] != a || s.ContractsCreated[1] != b {
		t.Fatal("ContractsCreated must preserve creation order")
	}
	if s.ContractsCreated[len(s.ContractsCreated)-1] != b {
		t.Fatal("last created contract should be the most recent")
	}
}

func TestAddSuicide_SetSemantics(t *testing.T) {
	s := New()
	x := types.HexToAddress("0xdead")
	s.AddSuicide(x)
	s.AddSuicide(x)
	if len(s.Suicides) != 1 {
		t.Fatalf("Suicides should dedupe, got %d entries", len(s.Suicides))
	}
	if !s.HasSuicided(x) {
		t.Fatal("HasSuicided should report true for a recorded suicide")
	}
}

func TestIncSstoreClears(t *testing.T) {
	s := New()
	s.SstoreClearsCount = 5
	s.IncSstoreClears()
	s.IncSstoreClears()
	s.IncSstoreClears()
	if s.SstoreClearsCount != 8 {
		t.Fatalf("SstoreClearsCount = %d, want 8", s.SstoreClearsCount)
	}
}

func TestAddLog_Order(t *testing.T) {
	s := New()
	addr := types.HexToAddress("0xbeef")
	l1 := &types.Log{Address: addr, Data: []byte("first")}
	l2 := &types.Log{Address: addr, Data: []byte("second")}
	s.AddLog(l1)
	s.AddLog(l2)
	if len(s.Logs) != 2 || s.Logs[0] != l1 || s.Logs[1] != l2 {
		t.Fatal("AddLog must preserve emission order")
	}
}
