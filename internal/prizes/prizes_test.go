package prizes

import "testing"

func TestLookup(t *testing.T) {
	table := Default()

	tests := []struct {
		score int
		level Level
		ok    bool
	}{
		{0, "", false},
		{499, "", false},
		{500, Bronze, true},
		{999, Bronze, true},
		{1000, Silver, true},
		{1500, Gold, true},
		{1999, Gold, true},
		{2000, Platinum, true},
		{9000, Platinum, true},
	}

	for _, tc := range tests {
		p, ok := table.Lookup(tc.score)
		if ok != tc.ok || p.Level != tc.level {
			t.Errorf("Lookup(%d) = %q, %v; expected %q, %v", tc.score, p.Level, ok, tc.level, tc.ok)
		}
	}
}

func TestNext(t *testing.T) {
	table := Default()

	if p, ok := table.Next(750); !ok || p.Level != Silver {
		t.Errorf("Next(750) = %q, %v; expected silver", p.Level, ok)
	}
	if _, ok := table.Next(2000); ok {
		t.Error("nothing should be left after platinum")
	}
}

func TestNewTableSorts(t *testing.T) {
	table := NewTable(Prize{Level: Gold, MinScore: 30}, Prize{Level: Bronze, MinScore: 10})
	all := table.All()
	if all[0].Level != Bronze || all[1].Level != Gold {
		t.Errorf("prizes not sorted: %+v", all)
	}
}

func TestShopCodeFor(t *testing.T) {
	table := Default()

	if c := table.ShopCodeFor(120); c.Code != FallbackCode || c.TopScore {
		t.Errorf("low score code = %+v, expected fallback", c)
	}
	if c := table.ShopCodeFor(1200); c.Code != "SILVER2024" || c.TopScore {
		t.Errorf("silver code = %+v", c)
	}
	if c := table.ShopCodeFor(2400); c.Code != "PLATINUM2024" || !c.TopScore {
		t.Errorf("top score code = %+v", c)
	}
}
