// Package hostile defines enemy archetypes, wave scaling and the per-tick
// seek behaviour toward the avatar.
package hostile

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/1siamBot/code-crash/engine/core"
)

// Kind selects an archetype
type Kind uint8

const (
	Basic Kind = iota
	Fast
	Tank
	Boss
)

func (k Kind) String() string {
	switch k {
	case Fast:
		return "fast"
	case Tank:
		return "tank"
	case Boss:
		return "boss"
	}
	return "basic"
}

// Archetype holds the unscaled stats of a kind
type Archetype struct {
	Radius float64
	Speed  float64
	Health float64
	Damage float64
	Score  int
	XP     int
	Color  color.RGBA
}

var archetypes = [...]Archetype{
	Basic: {Radius: 15, Speed: 2, Health: 30, Damage: 10, Score: 100, XP: 10, Color: color.RGBA{0xff, 0x00, 0x66, 0xff}},
	Fast:  {Radius: 12, Speed: 4, Health: 20, Damage: 8, Score: 150, XP: 15, Color: color.RGBA{0xff, 0xaa, 0x00, 0xff}},
	Tank:  {Radius: 25, Speed: 1, Health: 100, Damage: 20, Score: 300, XP: 30, Color: color.RGBA{0x00, 0xff, 0x66, 0xff}},
	Boss:  {Radius: 40, Speed: 1.5, Health: 300, Damage: 30, Score: 1000, XP: 100, Color: color.RGBA{0xff, 0x00, 0xff, 0xff}},
}

// ArchetypeOf returns the base stats for k
func ArchetypeOf(k Kind) Archetype {
	if int(k) >= len(archetypes) {
		k = Basic
	}
	return archetypes[k]
}

// Scaling multiplies archetype stats for the current wave
type Scaling struct {
	Speed, Health, Damage float64
}

// Scale returns the multipliers for wave. Tutorial hostiles are always weak.
func Scale(wave int, tutorial bool) Scaling {
	w := float64(wave)
	switch {
	case tutorial:
		return Scaling{0.5, 0.5, 0.3}
	case wave <= 1:
		return Scaling{0.7, 0.6, 0.5}
	case wave == 2:
		return Scaling{0.8, 0.7, 0.6}
	case wave <= 5:
		return Scaling{0.85 + (w-3)*0.05, 0.8 + (w-3)*0.1, 0.7 + (w-3)*0.1}
	}
	return Scaling{1 + (w-6)*0.03, 1 + (w-6)*0.08, 1 + (w-6)*0.05}
}

// PickKind chooses a kind from a single uniform draw, checking the rarest
// kinds first. Each kind only appears from its unlock wave on.
func PickKind(rng *rand.Rand, wave int, tutorial bool) Kind {
	if tutorial {
		return Basic
	}
	r := rng.Float64()
	w := float64(wave)
	switch {
	case wave >= 7 && r < 0.05+(w-7)*0.02:
		return Boss
	case wave >= 5 && r < 0.15+(w-5)*0.03:
		return Tank
	case wave >= 3 && r < 0.25+(w-3)*0.05:
		return Fast
	}
	return Basic
}

// SpawnMargin is how far off-screen hostiles appear
const SpawnMargin = 50.0

// SpawnPoint picks a point just outside a random edge of the bounds
func SpawnPoint(rng *rand.Rand, b core.Rect) core.Vec2 {
	switch rng.Intn(4) {
	case 0:
		return core.V(rng.Float64()*b.W, -SpawnMargin)
	case 1:
		return core.V(b.W+SpawnMargin, rng.Float64()*b.H)
	case 2:
		return core.V(rng.Float64()*b.W, b.H+SpawnMargin)
	}
	return core.V(-SpawnMargin, rng.Float64()*b.H)
}

const hitFlashTicks = 5

// Hostile is one enemy instance
type Hostile struct {
	Kind      Kind
	Pos       core.Vec2
	Radius    float64
	Speed     float64
	Health    float64
	MaxHealth float64
	Damage    float64
	Score     int
	XP        int
	Color     color.RGBA

	Angle    float64 // facing toward the avatar
	Wobble   float64 // cosmetic rotation phase
	HitFlash float64
}

// New builds a hostile of kind at pos scaled for wave
func New(kind Kind, pos core.Vec2, wave int, tutorial bool) Hostile {
	a := ArchetypeOf(kind)
	s := Scale(wave, tutorial)
	hp := a.Health * s.Health
	return Hostile{
		Kind:      kind,
		Pos:       pos,
		Radius:    a.Radius,
		Speed:     a.Speed * s.Speed,
		Health:    hp,
		MaxHealth: hp,
		Damage:    a.Damage * s.Damage,
		Score:     a.Score,
		XP:        a.XP,
		Color:     a.Color,
	}
}

// Update seeks straight at target. A hostile sitting exactly on the target
// does not move.
func (h *Hostile) Update(target core.Vec2) {
	d := target.Sub(h.Pos)
	if dir, ok := d.Normalize(); ok {
		h.Pos = h.Pos.Add(dir.Scale(h.Speed))
	}
	h.Angle = math.Atan2(d.Y, d.X)
	h.Wobble += 0.1
	core.Countdown(&h.HitFlash)
}

// TakeDamage subtracts amount and reports whether the hostile died
func (h *Hostile) TakeDamage(amount float64) bool {
	h.Health -= amount
	h.HitFlash = hitFlashTicks
	return h.Dead()
}

// Dead reports whether health is exhausted
func (h *Hostile) Dead() bool { return h.Health <= 0 }

// Knockback shoves the hostile dist pixels along dir
func (h *Hostile) Knockback(dir core.Vec2, dist float64) {
	if n, ok := dir.Normalize(); ok {
		h.Pos = h.Pos.Add(n.Scale(dist))
	}
}

// HealthFraction is remaining health in [0,1] for health bars
func (h *Hostile) HealthFraction() float64 {
	if h.MaxHealth <= 0 {
		return 0
	}
	return math.Max(0, h.Health/h.MaxHealth)
}
