package upgrade

import (
	"math"
	"math/rand"
	"testing"

	"github.com/1siamBot/code-crash/engine/core"
)

type fakeTarget struct {
	maxHealth, healed float64
	refills, grenades int
	shields           int
}

func (f *fakeTarget) RaiseMaxHealth(a float64) { f.maxHealth += a }
func (f *fakeTarget) Heal(a float64)           { f.healed += a }
func (f *fakeTarget) RefillAmmo()              { f.refills++ }
func (f *fakeTarget) AddGrenades(n int)        { f.grenades += n }
func (f *fakeTarget) ActivateShield() bool     { f.shields++; return true }

func TestOfferDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		opts := Offer(rng, OfferSize)
		if len(opts) != OfferSize {
			t.Fatalf("offer size = %d", len(opts))
		}
		seen := map[string]bool{}
		for _, o := range opts {
			if seen[o.ID] {
				t.Fatalf("duplicate %s in %v", o.ID, opts)
			}
			if !Known(o.ID) {
				t.Fatalf("unknown id %s offered", o.ID)
			}
			seen[o.ID] = true
		}
	}
	if got := len(Offer(rng, 100)); got != len(catalog) {
		t.Fatalf("oversized offer = %d, want %d", got, len(catalog))
	}
}

func TestOfferDoesNotMutateCatalog(t *testing.T) {
	before := Catalog()
	Offer(rand.New(rand.NewSource(3)), OfferSize)
	for i, u := range Catalog() {
		if u != before[i] {
			t.Fatalf("catalog order changed at %d", i)
		}
	}
}

func TestApply(t *testing.T) {
	m := Base()
	f := &fakeTarget{}
	for _, id := range []string{FireRate, FireRate, Pierce, DashCooldown, MaxHealth, Heal, Shield, Ammo, Grenade} {
		if !Apply(id, &m, f) {
			t.Fatalf("Apply(%s) rejected", id)
		}
	}
	if math.Abs(m.FireRate-1.44) > 1e-9 {
		t.Fatalf("fire rate should compound, got %v", m.FireRate)
	}
	if m.Pierce != 1 || math.Abs(m.DashCooldown-0.8) > 1e-9 {
		t.Fatalf("modifiers %+v", m)
	}
	if f.maxHealth != 20 || f.healed != 30 || f.refills != 1 || f.grenades != 2 || f.shields != 1 {
		t.Fatalf("target %+v", f)
	}
	if Apply("nope", &m, f) {
		t.Fatal("unknown id accepted")
	}
}

func TestFromProfile(t *testing.T) {
	p := core.DefaultProfile()
	p.Upgrades[PermMaxHealth] = 3
	p.Upgrades[PermArmor] = 20
	p.Upgrades[PermBulletPierce] = 5
	p.Upgrades[PermDamage] = 2
	p.Upgrades[PermGrenadeCapacity] = 1

	m, lo := FromProfile(p)
	if lo.MaxHealth != 130 || lo.MaxGrenades != 6 || lo.Grenades != 3 || lo.ShieldMaxHealth != 50 {
		t.Fatalf("loadout %+v", lo)
	}
	if m.Armor != maxArmor || m.Pierce != 3 || math.Abs(m.Damage-1.2) > 1e-9 {
		t.Fatalf("modifiers %+v", m)
	}

	base, lo := FromProfile(core.DefaultProfile())
	if base != Base() || lo.MaxHealth != 100 {
		t.Fatalf("fresh profile should start neutral: %+v %+v", base, lo)
	}
}

func TestPermanentCost(t *testing.T) {
	p, ok := LookupPermanent(PermMaxHealth)
	if !ok {
		t.Fatal("maxHealth missing")
	}
	for _, tt := range []struct{ level, want int }{{0, 100}, {1, 150}, {4, 300}} {
		if got := p.Cost(tt.level); got != tt.want {
			t.Errorf("Cost(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
	if _, ok := LookupPermanent("warp"); ok {
		t.Fatal("unknown permanent resolved")
	}
	if len(Permanents()) != 14 {
		t.Fatalf("permanents = %d", len(Permanents()))
	}
}

func TestShopItemAffordable(t *testing.T) {
	tests := []struct {
		id          string
		wave, funds int
		want        bool
	}{
		{ShopHeal25, 1, 30, true},
		{ShopHeal25, 1, 29, false},
		{ShopHeal50, 2, 500, false},
		{ShopHealFull, 5, 100, true},
		{ShopShield, 4, 500, false},
		{ShopMaxHealth, 7, 150, true},
		{ShopMaxHealth, 6, 150, false},
	}
	for _, tt := range tests {
		item, ok := LookupShopItem(tt.id)
		if !ok {
			t.Fatalf("%s missing", tt.id)
		}
		if got := item.Affordable(tt.wave, tt.funds); got != tt.want {
			t.Errorf("%s.Affordable(%d, %d) = %v, want %v", tt.id, tt.wave, tt.funds, got, tt.want)
		}
	}
	if len(ShopItems()) != 7 {
		t.Fatalf("shop items = %d", len(ShopItems()))
	}
}
