package entity

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/1siamBot/code-crash/engine/core"
)

// Effects is the command buffer entity updates append to. The world drains
// it after each update so entities never reference their container.
type Effects struct {
	Projectiles []Projectile
	Grenades    []Grenade
	Particles   []Particle
}

func (fx *Effects) Fire(p Projectile) { fx.Projectiles = append(fx.Projectiles, p) }
func (fx *Effects) Throw(g Grenade)   { fx.Grenades = append(fx.Grenades, g) }
func (fx *Effects) Emit(p Particle)   { fx.Particles = append(fx.Particles, p) }

// Empty reports whether nothing is queued
func (fx *Effects) Empty() bool {
	return len(fx.Projectiles) == 0 && len(fx.Grenades) == 0 && len(fx.Particles) == 0
}

// Reset clears the buffer, keeping capacity
func (fx *Effects) Reset() {
	fx.Projectiles = fx.Projectiles[:0]
	fx.Grenades = fx.Grenades[:0]
	fx.Particles = fx.Particles[:0]
}

// NewParticle builds a particle with a random 30-50 tick life
func NewParticle(rng *rand.Rand, pos, vel core.Vec2, c color.RGBA, size float64) Particle {
	life := 30 + rng.Float64()*20
	return Particle{Pos: pos, Vel: vel, Color: c, Size: size, Life: life, MaxLife: life}
}

// Burst describes a radial particle spray
type Burst struct {
	Count    int
	MinSpeed float64
	SpeedVar float64
	MinSize  float64
	SizeVar  float64
	Color    color.RGBA
	Palette  []color.RGBA // picked at random per particle when set
}

// Burst sprays particles in random directions from pos
func (fx *Effects) Burst(rng *rand.Rand, pos core.Vec2, b Burst) {
	for i := 0; i < b.Count; i++ {
		angle := rng.Float64() * math.Pi * 2
		speed := b.MinSpeed + rng.Float64()*b.SpeedVar
		size := b.MinSize + rng.Float64()*b.SizeVar
		c := b.Color
		if len(b.Palette) > 0 {
			c = b.Palette[rng.Intn(len(b.Palette))]
		}
		fx.Emit(NewParticle(rng, pos, core.FromAngle(angle, speed), c, size))
	}
}

// Ring emits n particles evenly around pos at distance r, moving outward
func (fx *Effects) Ring(rng *rand.Rand, pos core.Vec2, n int, r, speed, size float64, c color.RGBA) {
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * math.Pi * 2
		fx.Emit(NewParticle(rng, pos.Add(core.FromAngle(angle, r)), core.FromAngle(angle, speed), c, size))
	}
}
