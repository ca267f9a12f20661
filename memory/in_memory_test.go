package memory

import (
	"testing"

	"github.com/lumostack/agentkit/core"
)

// Interface compliance (compile-time assertion)
var _ core.MemoryStore = (*InMemoryStore)(nil)

func TestInMemoryStore_GetAndPut(t *testing.T) {
	svc := NewInMemoryStore()
	m, err := svc.Get("s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty memory, got %#v", m)
	}
	if err := svc.Put("s1", map[string]any{"k1": "v1", "k2": 2}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	m2, _ := svc.Get("s1")
	if len(m2) != 2 || m2["k1"] != "v1" || m2["k2"].(int) != 2 {
		t.Fatalf("unexpected memory contents: %#v", m2)
	}
	// mutation safety (returned map is a copy)
	m2["k1"] = "changed"
	m3, _ := svc.Get("s1")
	if m3["k1"] != "v1" {
		t.Fatalf("expected copy isolation, got %#v", m3["k1"])
	}
}

func TestInMemoryStore_StoreSearchDelete(t *testing.T) {
	svc := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		if err := svc.Store("s2", "content"+string(rune('A'+i)), map[string]any{"idx": i}); err != nil {
			t.Fatalf("store failed: %v", err)
		}
	}

	res, err := svc.Search("s2", "", 10)
	if err != nil {
		t.Fatalf("search all failed: %v", err)
	}
	if len(res) != 5 {
		t.Fatalf("expected 5 results, got %d", len(res))
	}
	// insertion order preserved
	if res[0].Content != "contentA" || res[4].Content != "contentE" {
		t.Fatalf("unexpected order: %v", res)
	}

	res, err = svc.Search("s2", "contentc", 10)
	if err != nil {
		t.Fatalf("substring search failed: %v", err)
	}
	if len(res) != 1 || res[0].Content != "contentC" {
		t.Fatalf("expected case-insensitive single hit, got %v", res)
	}

	res, _ = svc.Search("s2", "", 2)
	if len(res) != 2 {
		t.Fatalf("expected limit to apply, got %d results", len(res))
	}

	if err := svc.Delete("s2", res[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete("s2", "nope"); err == nil {
		t.Fatal("expected error deleting unknown memory")
	}
	res, _ = svc.Search("s2", "", 10)
	if len(res) != 4 {
		t.Fatalf("expected 4 results after delete, got %d", len(res))
	}
}
