// Package upgrade holds the stat-modifier table, the in-run upgrade catalog
// offered on pickup collection, and the permanent (cross-run) upgrades.
package upgrade

import (
	"math"

	"github.com/1siamBot/code-crash/engine/core"
)

// Modifiers scales avatar behaviour. Multipliers start at 1 and compound
// multiplicatively; Pierce and the flat bonuses add.
type Modifiers struct {
	FireRate     float64
	MoveSpeed    float64
	Damage       float64
	BulletSpeed  float64
	ReloadSpeed  float64
	DashCooldown float64
	BlastRadius  float64
	XPBonus      float64
	Pierce       int
	CritChance   float64
	Armor        float64 // fraction of incoming damage blocked
	Lifesteal    float64 // health restored per kill
	DashTicks    float64 // extra dash duration
	DropBonus    float64 // added to pickup drop chance
}

// Base returns the neutral table
func Base() Modifiers {
	return Modifiers{
		FireRate:     1,
		MoveSpeed:    1,
		Damage:       1,
		BulletSpeed:  1,
		ReloadSpeed:  1,
		DashCooldown: 1,
		BlastRadius:  1,
		XPBonus:      1,
	}
}

// Loadout is the avatar's starting resources derived from the profile
type Loadout struct {
	MaxHealth       float64
	MaxGrenades     int
	Grenades        int
	ShieldMaxHealth float64
}

const maxArmor = 0.5

// FromProfile computes the starting modifiers and loadout for a run.
// Levels above a permanent upgrade's cap are clamped.
func FromProfile(p core.Profile) (Modifiers, Loadout) {
	lvl := func(id string) float64 {
		def, ok := permanentByID[id]
		l := p.Level(id)
		if l < 0 {
			l = 0
		}
		if ok && l > def.Max {
			l = def.Max
		}
		return float64(l)
	}

	m := Base()
	m.Damage = 1 + lvl(PermDamage)*0.1
	m.MoveSpeed = 1 + lvl(PermMoveSpeed)*0.05
	m.ReloadSpeed = 1 + lvl(PermReloadSpeed)*0.1
	m.CritChance = lvl(PermCritChance) * 0.05
	m.XPBonus = 1 + lvl(PermXPBonus)*0.1
	m.Armor = math.Min(maxArmor, lvl(PermArmor)*0.05)
	m.Lifesteal = lvl(PermLifesteal)
	m.BlastRadius = 1 + lvl(PermExplosionRadius)*0.1
	m.Pierce = int(lvl(PermBulletPierce))
	m.DashTicks = lvl(PermDashDistance)
	m.DropBonus = lvl(PermLuckyDrops) * 0.05

	lo := Loadout{
		MaxHealth:       100 + lvl(PermMaxHealth)*10,
		MaxGrenades:     5 + int(lvl(PermGrenadeCapacity)),
		ShieldMaxHealth: 50 + lvl(PermShieldStrength)*20,
	}
	lo.Grenades = min(3, lo.MaxGrenades)
	return m, lo
}
