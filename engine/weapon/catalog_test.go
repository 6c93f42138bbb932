package weapon

import (
	"reflect"
	"testing"
)

func ids(ws []Weapon) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func TestLookup(t *testing.T) {
	w, ok := Lookup("railgun")
	if !ok || w.Damage != 100 || w.Cost != 1200 {
		t.Fatalf("Lookup(railgun) = %+v, %v", w, ok)
	}
	if _, ok := Lookup("bfg"); ok {
		t.Fatal("unknown weapon resolved")
	}
	if d := Default(); d.ID != "pistol" || d.Cost != 0 || d.UnlockWave != 0 {
		t.Fatalf("Default = %+v", d)
	}
}

func TestAllOrder(t *testing.T) {
	all := All()
	if len(all) != 11 {
		t.Fatalf("catalog has %d weapons, want 11", len(all))
	}
	for i := 1; i < len(all); i++ {
		a, b := all[i-1], all[i]
		if a.Tier > b.Tier || (a.Tier == b.Tier && a.Cost > b.Cost) {
			t.Fatalf("%s before %s breaks tier/cost order", a.ID, b.ID)
		}
	}
	if all[0].ID != "pistol" {
		t.Fatalf("first weapon = %s", all[0].ID)
	}
}

func TestByTier(t *testing.T) {
	tests := []struct {
		tier int
		want []string
	}{
		{1, []string{"pistol", "dualPistol"}},
		{2, []string{"shotgun", "spread", "machineGun"}},
		{4, []string{"minigun", "railgun"}},
		{9, nil},
	}
	for _, tt := range tests {
		got := ids(ByTier(tt.tier))
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ByTier(%d) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

func TestAvailable(t *testing.T) {
	tests := []struct {
		name        string
		wave, level int
		owned       []string
		want        []string
	}{
		{"fresh", 0, 0, nil, []string{"pistol"}},
		{"both met", 3, 2, nil, []string{"pistol", "dualPistol"}},
		{"wave only", 5, 2, nil, []string{"pistol", "dualPistol"}},
		{"owned early", 4, 3, []string{"railgun"}, []string{"pistol", "dualPistol", "railgun"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Available(tt.wave, tt.level, tt.owned)); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Available = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEarlyUnlockCost(t *testing.T) {
	w, _ := Lookup("shotgun")
	if w.EarlyUnlockCost() != 700 {
		t.Fatalf("early cost = %d, want 700", w.EarlyUnlockCost())
	}
	if PatternRing.String() != "ring" || Pattern(42).String() != "unknown" {
		t.Fatal("pattern names")
	}
}
