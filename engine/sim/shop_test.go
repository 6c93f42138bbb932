package sim

import (
	"testing"

	"github.com/1siamBot/code-crash/engine/avatar"
	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/upgrade"
)

func newShopWorld(t *testing.T, currency, wave int) (*World, *recorder) {
	t.Helper()
	p := core.DefaultProfile()
	p.Currency = currency
	rec := &recorder{}
	w := New(Options{Bounds: testBounds, Profile: p, Seed: 5, Sink: rec})
	w.running = true
	w.director.Begin(wave)
	return w, rec
}

func TestBuyShopItem(t *testing.T) {
	tests := []struct {
		id    string
		wave  int
		setup func(a *avatar.Avatar)
		check func(t *testing.T, a *avatar.Avatar)
	}{
		{upgrade.ShopHeal25, 1,
			func(a *avatar.Avatar) { a.Health = 50 },
			func(t *testing.T, a *avatar.Avatar) {
				if a.Health != 75 {
					t.Fatalf("health = %v, want 75", a.Health)
				}
			}},
		{upgrade.ShopHeal50, 3,
			func(a *avatar.Avatar) { a.Health = 20 },
			func(t *testing.T, a *avatar.Avatar) {
				if a.Health != 70 {
					t.Fatalf("health = %v, want 70", a.Health)
				}
			}},
		{upgrade.ShopHealFull, 5,
			func(a *avatar.Avatar) { a.Health = 10 },
			func(t *testing.T, a *avatar.Avatar) {
				if a.Health != a.MaxHealth {
					t.Fatalf("health = %v, want %v", a.Health, a.MaxHealth)
				}
			}},
		{upgrade.ShopAmmo, 1,
			func(a *avatar.Avatar) {
				a.Ammo = 0
				a.Reload()
			},
			func(t *testing.T, a *avatar.Avatar) {
				if a.Ammo != a.MaxAmmo || a.Reloading {
					t.Fatalf("ammo=%d reloading=%v", a.Ammo, a.Reloading)
				}
			}},
		{upgrade.ShopGrenades, 1,
			func(a *avatar.Avatar) { a.Grenades = 0 },
			func(t *testing.T, a *avatar.Avatar) {
				if a.Grenades != 2 {
					t.Fatalf("grenades = %d, want 2", a.Grenades)
				}
			}},
		{upgrade.ShopShield, 5,
			func(a *avatar.Avatar) {},
			func(t *testing.T, a *avatar.Avatar) {
				if !a.ShieldActive || a.ShieldHealth != a.ShieldMaxHealth {
					t.Fatalf("shield active=%v hp=%v", a.ShieldActive, a.ShieldHealth)
				}
			}},
		{upgrade.ShopMaxHealth, 7,
			func(a *avatar.Avatar) { a.Health = 60 },
			func(t *testing.T, a *avatar.Avatar) {
				if a.MaxHealth != 120 || a.Health != 80 {
					t.Fatalf("health %v/%v, want 80/120", a.Health, a.MaxHealth)
				}
			}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w, rec := newShopWorld(t, 1000, tt.wave)
			tt.setup(w.avatar)
			item, _ := upgrade.LookupShopItem(tt.id)

			if !w.BuyShopItem(tt.id) {
				t.Fatal("purchase refused")
			}
			tt.check(t, w.avatar)
			if w.Funds() != 1000-item.Cost || w.Stats().Funds != w.Funds() {
				t.Fatalf("funds = %d, want %d", w.Funds(), 1000-item.Cost)
			}
			if rec.stats != 1 {
				t.Fatalf("stats emitted %d times, want 1", rec.stats)
			}
		})
	}
}

func TestBuyShopItemRefusals(t *testing.T) {
	tests := []struct {
		name     string
		currency int
		wave     int
		id       string
		setup    func(w *World)
	}{
		{"before its wave", 1000, 2, upgrade.ShopHeal50, func(w *World) { w.avatar.Health = 10 }},
		{"not enough funds", 20, 1, upgrade.ShopHeal25, func(w *World) { w.avatar.Health = 10 }},
		{"already at full health", 1000, 1, upgrade.ShopHeal25, func(w *World) {}},
		{"magazine full", 1000, 1, upgrade.ShopAmmo, func(w *World) {}},
		{"grenades full", 1000, 1, upgrade.ShopGrenades, func(w *World) { w.avatar.Grenades = w.avatar.MaxGrenades }},
		{"shield cooling down", 1000, 5, upgrade.ShopShield, func(w *World) { w.avatar.ShieldCooldown = 10 }},
		{"unknown item", 1000, 9, "jetpack", func(w *World) {}},
		{"offer pending", 1000, 1, upgrade.ShopHeal25, func(w *World) {
			w.avatar.Health = 10
			w.offer = []core.UpgradeOption{{ID: upgrade.Heal}}
		}},
		{"run stopped", 1000, 1, upgrade.ShopHeal25, func(w *World) {
			w.avatar.Health = 10
			w.Stop()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newShopWorld(t, tt.currency, tt.wave)
			tt.setup(w)
			if w.BuyShopItem(tt.id) {
				t.Fatal("purchase accepted")
			}
			if w.Funds() != tt.currency {
				t.Fatalf("funds = %d, want %d untouched", w.Funds(), tt.currency)
			}
		})
	}
}

func TestShopWorksWhilePausedAndDebitsOnRunEnd(t *testing.T) {
	w, rec := newShopWorld(t, 80, 1)
	w.avatar.Health = 40
	w.TogglePause()
	if !w.BuyShopItem(upgrade.ShopHeal25) || !w.BuyShopItem(upgrade.ShopHeal25) {
		t.Fatal("paused purchases refused")
	}
	if w.BuyShopItem(upgrade.ShopHeal25) {
		t.Fatal("third purchase should exceed the funds")
	}
	w.Stop()

	if len(rec.runEnds) != 1 || rec.runEnds[0].SpentCurrency != 60 {
		t.Fatalf("run end deltas = %+v, want 60 spent", rec.runEnds)
	}
	p := core.DefaultProfile()
	p.Currency = 80
	if got := p.Merge(rec.runEnds[0]).Currency; got != 20 {
		t.Fatalf("merged currency = %d, want 20", got)
	}
}
