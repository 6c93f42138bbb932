package entity

import (
	"image/color"

	"github.com/1siamBot/code-crash/engine/core"
)

const (
	TrailLen     = 8
	BulletRadius = 5.0
	RocketRadius = 8.0
)

// Projectile is a bullet fired by the avatar
type Projectile struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Damage float64
	// Pierce is the number of further hostiles this shot may damage.
	// It is decremented on every hit and the shot is removed below zero.
	Pierce int
	Splash float64
	Color  color.RGBA

	trail     [TrailLen]core.Vec2
	trailHead int
	trailLen  int

	// every hostile damaged so far; a shot is spent after Pierce+1 hits
	hits []core.Handle
}

// NewProjectile builds a projectile; explosive shots get the larger rocket radius
func NewProjectile(pos, vel core.Vec2, damage float64, pierce int, splash float64, c color.RGBA) Projectile {
	r := BulletRadius
	if splash > 0 {
		r = RocketRadius
	}
	return Projectile{
		Pos:    pos,
		Vel:    vel,
		Radius: r,
		Damage: damage,
		Pierce: pierce,
		Splash: splash,
		Color:  c,
		hits:   make([]core.Handle, 0, max(0, pierce)+1),
	}
}

// Update records the trail and moves one tick
func (p *Projectile) Update() {
	p.trail[p.trailHead] = p.Pos
	p.trailHead = (p.trailHead + 1) % TrailLen
	if p.trailLen < TrailLen {
		p.trailLen++
	}
	p.Pos = p.Pos.Add(p.Vel)
}

// Trail returns past positions, oldest first
func (p *Projectile) Trail() []core.Vec2 {
	out := make([]core.Vec2, 0, p.trailLen)
	start := (p.trailHead - p.trailLen + TrailLen) % TrailLen
	for i := 0; i < p.trailLen; i++ {
		out = append(out, p.trail[(start+i)%TrailLen])
	}
	return out
}

// HasHit reports whether this projectile already damaged h
func (p *Projectile) HasHit(h core.Handle) bool {
	for _, hit := range p.hits {
		if hit == h {
			return true
		}
	}
	return false
}

// RegisterHit decrements pierce and remembers the target.
// It returns true when the projectile is spent.
func (p *Projectile) RegisterHit(h core.Handle) bool {
	p.hits = append(p.hits, h)
	p.Pierce--
	return p.Pierce < 0
}

// Explosive reports whether the projectile carries splash damage
func (p *Projectile) Explosive() bool { return p.Splash > 0 }
