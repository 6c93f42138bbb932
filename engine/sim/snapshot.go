package sim

import (
	"math"

	"github.com/1siamBot/code-crash/engine/avatar"
	"github.com/1siamBot/code-crash/engine/core"
)

// Stats builds the display record for the current tick
func (w *World) Stats() core.Stats {
	a := w.avatar
	return core.Stats{
		Tick:              w.tick,
		Health:            int(math.Ceil(a.Health)),
		MaxHealth:         int(math.Ceil(a.MaxHealth)),
		Ammo:              a.Ammo,
		MaxAmmo:           a.MaxAmmo,
		Reloading:         a.Reloading,
		XP:                a.XP,
		XPToLevel:         a.XPToLevel,
		Level:             a.Level,
		SessionXP:         w.sessionXP,
		Funds:             w.Funds(),
		Wave:              w.director.Wave(),
		Score:             w.score,
		Kills:             w.kills,
		Combo:             w.combo,
		WeaponName:        a.Weapon.Name,
		Grenades:          a.Grenades,
		MaxGrenades:       a.MaxGrenades,
		ShieldActive:      a.ShieldActive,
		ShieldHealth:      a.ShieldHealth,
		ShieldMaxHealth:   a.ShieldMaxHealth,
		ShieldCooldown:    a.ShieldCooldown,
		ShieldMaxCooldown: avatar.ShieldCooldown,
	}
}

// Summary describes the run so far
func (w *World) Summary() core.RunSummary {
	return core.RunSummary{
		Wave:         w.director.Wave(),
		Level:        w.avatar.Level,
		Score:        w.score,
		SessionXP:    w.sessionXP,
		Kills:        w.kills,
		HighestCombo: w.highestCombo,
		Ticks:        w.tick,
		Spent:        w.spent,
		Died:         w.over,
	}
}
