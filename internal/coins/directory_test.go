package coins

import "testing"

func TestLookup(t *testing.T) {
	d := Default()
	tests := []struct {
		query  string
		symbol string
		ok     bool
	}{
		{"PEPE", "PEPE", true},
		{"pepe", "PEPE", true},
		{" bonk ", "BONK", true},
		{"Baby Doge", "BABYDOGE", true},
		{"gamestop", "GME", true},
		{"DOGE", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		c, ok := d.Lookup(tt.query)
		if ok != tt.ok || c.Symbol != tt.symbol {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.query, c.Symbol, ok, tt.symbol, tt.ok)
		}
	}
}

func TestSearch(t *testing.T) {
	d := Default()
	if got := len(d.Search("")); got != len(all) {
		t.Errorf("empty search returned %d coins, want %d", got, len(all))
	}
	got := d.Search("fart")
	if len(got) != 2 || got[0].Symbol != "FART" || got[1].Symbol != "FARTBOY" {
		t.Errorf("Search(fart) = %v", got)
	}
	if len(d.Search("zzz")) != 0 {
		t.Error("expected no matches")
	}
}

func TestDirectoryIsImmutable(t *testing.T) {
	d := Default()
	coins := d.All()
	coins[0].Symbol = "HACKED"
	if c, _ := d.Lookup("ACT"); c.Symbol != "ACT" {
		t.Error("mutating All() must not affect the directory")
	}
}
