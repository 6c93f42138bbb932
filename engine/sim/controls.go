package sim

import (
	"image/color"
	"math"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/upgrade"
)

var shieldRing = color.RGBA{0x00, 0xaa, 0xff, 0xff}

// Feed stores the latest input. Held state replaces the previous record;
// a dash edge is kept until a tick consumes it.
func (w *World) Feed(in core.Input) {
	if !w.running {
		return
	}
	in.Dash = in.Dash || w.input.Dash
	w.input = in
}

// TogglePause flips the pause state and returns the new value
func (w *World) TogglePause() bool {
	if !w.running {
		return w.paused
	}
	w.paused = !w.paused
	w.sink.OnPauseChange(w.paused)
	return w.paused
}

func (w *World) acceptsActions() bool {
	return w.running && !w.paused
}

// Reload starts a manual reload
func (w *World) Reload() bool {
	if !w.acceptsActions() {
		return false
	}
	return w.avatar.Reload()
}

// ThrowGrenade throws at the current aim point
func (w *World) ThrowGrenade() bool {
	if !w.acceptsActions() || w.offer != nil {
		return false
	}
	ok := w.avatar.ThrowGrenade(w.input.Aim, &w.mods, &w.fx)
	w.flush()
	return ok
}

// ActivateShield raises the shield if it is ready
func (w *World) ActivateShield() bool {
	if !w.acceptsActions() {
		return false
	}
	return w.activateShield()
}

func (w *World) activateShield() bool {
	if !w.avatar.ActivateShield() {
		return false
	}
	w.fx.Ring(w.rng, w.avatar.Pos, 20, 30, 2, 4, shieldRing)
	w.flush()
	return true
}

// ChooseUpgrade applies one of the pending options and resumes the run.
// Ids that were not offered are ignored and the offer stays open.
func (w *World) ChooseUpgrade(id string) bool {
	if !w.running || w.offer == nil {
		return false
	}
	offered := false
	for _, o := range w.offer {
		if o.ID == id {
			offered = true
			break
		}
	}
	if !offered || !upgrade.Apply(id, &w.mods, avatarTarget{w}) {
		return false
	}
	w.offer = nil
	return true
}

// Resize changes the visible bounds and keeps the avatar inside them
func (w *World) Resize(width, height float64) {
	if !w.running || width <= 0 || height <= 0 {
		return
	}
	w.bounds = core.Rect{W: width, H: height}
	w.avatar.KeepInside(w.bounds)
}

// avatarTarget routes direct upgrades to the avatar, adding the world-side
// effects the avatar cannot produce on its own.
type avatarTarget struct{ w *World }

func (t avatarTarget) RaiseMaxHealth(amount float64) { t.w.avatar.RaiseMaxHealth(amount) }
func (t avatarTarget) Heal(amount float64)           { t.w.avatar.Heal(math.Max(0, amount)) }
func (t avatarTarget) RefillAmmo()                   { t.w.avatar.RefillAmmo() }
func (t avatarTarget) AddGrenades(n int)             { t.w.avatar.AddGrenades(n) }
func (t avatarTarget) ActivateShield() bool          { return t.w.activateShield() }

// BuyShopItem spends profile currency on a shop item. Purchases are refused
// while an upgrade offer is pending, before the item's wave, without the
// funds, or when the item would change nothing. The shop stays open while
// the run is paused.
func (w *World) BuyShopItem(id string) bool {
	if !w.running || w.offer != nil {
		return false
	}
	item, ok := upgrade.LookupShopItem(id)
	if !ok || !item.Affordable(w.director.Wave(), w.Funds()) {
		return false
	}
	if !w.applyShopItem(item.ID) {
		return false
	}
	w.spent += item.Cost
	w.emitStats()
	return true
}

func (w *World) applyShopItem(id string) bool {
	a := w.avatar
	switch id {
	case upgrade.ShopHeal25, upgrade.ShopHeal50, upgrade.ShopHealFull:
		if a.Health >= a.MaxHealth {
			return false
		}
		amount := a.MaxHealth
		switch id {
		case upgrade.ShopHeal25:
			amount = 25
		case upgrade.ShopHeal50:
			amount = 50
		}
		a.Heal(amount)
	case upgrade.ShopAmmo:
		if a.Ammo == a.MaxAmmo && !a.Reloading {
			return false
		}
		a.RefillAmmo()
	case upgrade.ShopGrenades:
		if a.Grenades >= a.MaxGrenades {
			return false
		}
		a.AddGrenades(2)
	case upgrade.ShopShield:
		return w.activateShield()
	case upgrade.ShopMaxHealth:
		a.RaiseMaxHealth(20)
	default:
		return false
	}
	return true
}
