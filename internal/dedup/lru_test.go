package dedup

import "testing"

// ── capacity and eviction order ────────────────────────────────────────────

func TestLRU_EvictsLeastRecentlyAccessed(t *testing.T) {
	c := newLRU(3)
	c.Add("a")
	c.Add("b")
	c.Add("c")
	c.Add("d") // evicts "a"

	if c.Contains("a") {
		t.Error("\"a\" should have been evicted")
	}
	for _, k := range []string{"b", "c", "d"} {
		if !c.Contains(k) {
			t.Errorf("%q should still be cached", k)
		}
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestLRU_ContainsProtectsFromEviction(t *testing.T) {
	c := newLRU(3)
	c.Add("a")
	c.Add("b")
	c.Add("c")
	c.Contains("a") // promote — "b" is now the coldest
	c.Add("d")

	if !c.Contains("a") {
		t.Error("promoted \"a\" should survive eviction pressure")
	}
	if c.Contains("b") {
		t.Error("untouched \"b\" should have been evicted")
	}
}

func TestLRU_ReAddRefreshesRecency(t *testing.T) {
	c := newLRU(2)
	c.Add("a")
	c.Add("b")
	c.Add("a") // refresh, no growth
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	c.Add("c") // evicts "b", not "a"
	if c.Contains("b") {
		t.Error("\"b\" should have been evicted")
	}
	if !c.Contains("a") {
		t.Error("refreshed \"a\" should survive")
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := newLRU(4)
	c.Add("a")
	c.Add("b")
	c.Remove("a")
	if c.Contains("a") {
		t.Error("removed key still present")
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
}
