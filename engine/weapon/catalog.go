// Package weapon is the static weapon table. It is read-only to the
// simulation; the armory collaborator uses the cost and unlock fields.
package weapon

import (
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/colornames"
)

// Pattern selects how one trigger pull turns into projectiles
type Pattern uint8

const (
	// PatternSingle fires one aimed shot with random spread
	PatternSingle Pattern = iota
	// PatternDual fires two shots from offsets either side of the avatar
	PatternDual
	// PatternSpread fans Pellets shots evenly across Spread radians
	PatternSpread
	// PatternRing fires Pellets shots evenly around the full circle
	PatternRing
)

func (p Pattern) String() string {
	switch p {
	case PatternSingle:
		return "single"
	case PatternDual:
		return "dual"
	case PatternSpread:
		return "spread"
	case PatternRing:
		return "ring"
	}
	return "unknown"
}

// Weapon is one catalog entry. Rates and durations are in ticks.
type Weapon struct {
	ID          string
	Name        string
	Description string
	FireRate    float64 // ticks between shots
	Damage      float64
	BulletSpeed float64 // pixels per tick
	MaxAmmo     int
	ReloadTime  float64 // ticks
	Pattern     Pattern
	Pellets     int
	Spread      float64 // radians
	Pierce      int     // intrinsic extra hits
	Splash      float64 // splash radius, 0 = none
	Cost        int
	UnlockWave  int
	UnlockLevel int
	Tier        int
	Color       color.RGBA
}

// EarlyUnlockCost is the price of buying a weapon before its requirements are met
func (w Weapon) EarlyUnlockCost() int { return w.Cost * 2 }

var catalog = map[string]Weapon{
	"pistol": {
		ID: "pistol", Name: "BYTE BLASTER", Description: "Standard issue cyber pistol",
		FireRate: 8, Damage: 10, BulletSpeed: 12, MaxAmmo: 30, ReloadTime: 60,
		Pattern: PatternSingle, Pellets: 1, Spread: 0.1,
		Tier: 1, Color: colornames.Cyan,
	},
	"dualPistol": {
		ID: "dualPistol", Name: "DUAL BYTES", Description: "Two pistols firing from both sides",
		FireRate: 10, Damage: 8, BulletSpeed: 12, MaxAmmo: 40, ReloadTime: 70,
		Pattern: PatternDual, Pellets: 2, Spread: 0.3,
		Cost: 200, UnlockWave: 3, UnlockLevel: 2, Tier: 1, Color: colornames.Springgreen,
	},
	"shotgun": {
		ID: "shotgun", Name: "DATA SCATTER", Description: "Fires 5 pellets in a wide spread",
		FireRate: 25, Damage: 8, BulletSpeed: 10, MaxAmmo: 8, ReloadTime: 90,
		Pattern: PatternSpread, Pellets: 5, Spread: 0.4,
		Cost: 350, UnlockWave: 5, UnlockLevel: 3, Tier: 2, Color: colornames.Darkorange,
	},
	"machineGun": {
		ID: "machineGun", Name: "STREAM PROCESSOR", Description: "Rapid fire with high ammo capacity",
		FireRate: 4, Damage: 6, BulletSpeed: 14, MaxAmmo: 100, ReloadTime: 120,
		Pattern: PatternSingle, Pellets: 1, Spread: 0.15,
		Cost: 500, UnlockWave: 7, UnlockLevel: 4, Tier: 2, Color: colornames.Yellow,
	},
	"plasma": {
		ID: "plasma", Name: "PLASMA CASTER", Description: "Charged plasma shots with splash damage",
		FireRate: 20, Damage: 25, BulletSpeed: 9, MaxAmmo: 15, ReloadTime: 85,
		Pattern: PatternSingle, Pellets: 1, Spread: 0.05, Splash: 50,
		Cost: 600, UnlockWave: 8, UnlockLevel: 5, Tier: 3, Color: colornames.Darkviolet,
	},
	"laser": {
		ID: "laser", Name: "FIBER OPTIC", Description: "Piercing laser beam, hits multiple enemies",
		FireRate: 15, Damage: 15, BulletSpeed: 25, MaxAmmo: 20, ReloadTime: 80,
		Pattern: PatternSingle, Pellets: 1, Pierce: 5,
		Cost: 650, UnlockWave: 9, UnlockLevel: 5, Tier: 3, Color: colornames.Magenta,
	},
	"spread": {
		ID: "spread", Name: "BROADCAST", Description: "Fires bullets in all directions",
		FireRate: 30, Damage: 12, BulletSpeed: 10, MaxAmmo: 15, ReloadTime: 85,
		Pattern: PatternRing, Pellets: 8, Spread: 2 * math.Pi,
		Cost: 450, UnlockWave: 6, UnlockLevel: 4, Tier: 2, Color: colornames.Aqua,
	},
	"rocket": {
		ID: "rocket", Name: "STACK OVERFLOW", Description: "Explosive rockets with large area damage",
		FireRate: 45, Damage: 40, BulletSpeed: 8, MaxAmmo: 5, ReloadTime: 100,
		Pattern: PatternSingle, Pellets: 1, Splash: 100,
		Cost: 800, UnlockWave: 10, UnlockLevel: 6, Tier: 3, Color: colornames.Deeppink,
	},
	"minigun": {
		ID: "minigun", Name: "THREAD RIPPER", Description: "Extreme fire rate, massive ammo capacity",
		FireRate: 2, Damage: 4, BulletSpeed: 16, MaxAmmo: 200, ReloadTime: 180,
		Pattern: PatternSingle, Pellets: 1, Spread: 0.2,
		Cost: 1000, UnlockWave: 12, UnlockLevel: 7, Tier: 4, Color: colornames.Orangered,
	},
	"railgun": {
		ID: "railgun", Name: "QUANTUM RAIL", Description: "Devastating piercing shot, slow but deadly",
		FireRate: 60, Damage: 100, BulletSpeed: 40, MaxAmmo: 3, ReloadTime: 150,
		Pattern: PatternSingle, Pellets: 1,
		Cost: 1200, UnlockWave: 15, UnlockLevel: 8, Tier: 4, Color: colornames.Mediumspringgreen,
	},
	"flamethrower": {
		ID: "flamethrower", Name: "HEAT SINK", Description: "Short range flame spray, burns enemies",
		FireRate: 3, Damage: 3, BulletSpeed: 6, MaxAmmo: 150, ReloadTime: 100,
		Pattern: PatternSpread, Pellets: 3, Spread: 0.5,
		Cost: 900, UnlockWave: 11, UnlockLevel: 6, Tier: 3, Color: colornames.Orange,
	},
}

// Lookup returns the weapon for id
func Lookup(id string) (Weapon, bool) {
	w, ok := catalog[id]
	return w, ok
}

// Default returns the starter weapon
func Default() Weapon {
	return catalog["pistol"]
}

// All returns every weapon ordered by tier, then cost
func All() []Weapon {
	out := make([]Weapon, 0, len(catalog))
	for _, w := range catalog {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ByTier returns the weapons of one tier
func ByTier(tier int) []Weapon {
	var out []Weapon
	for _, w := range All() {
		if w.Tier == tier {
			out = append(out, w)
		}
	}
	return out
}

// Available returns weapons that are owned or whose wave and level
// requirements are met by the given bests.
func Available(wave, level int, owned []string) []Weapon {
	have := make(map[string]bool, len(owned))
	for _, id := range owned {
		have[id] = true
	}
	var out []Weapon
	for _, w := range All() {
		if have[w.ID] || (w.UnlockWave <= wave && w.UnlockLevel <= level) {
			out = append(out, w)
		}
	}
	return out
}
