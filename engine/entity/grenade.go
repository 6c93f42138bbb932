package entity

import (
	"math"

	"github.com/1siamBot/code-crash/engine/core"
)

const (
	GrenadeRadius     = 8.0
	GrenadeMaxBounces = 2
	GrenadeMaxSpeed   = 12.0
	grenadeFriction   = 0.98
	grenadeRestitute  = -0.6
)

// Grenade is a thrown explosive that rolls, bounces off the canvas edges
// and explodes when its fuse burns down or it bounces too often.
type Grenade struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Radius  float64
	Damage  float64
	Blast   float64 // explosion radius
	Fuse    float64 // ticks left
	MaxFuse float64
	Bounces int
}

// NewGrenade throws from pos toward target. Speed grows with distance but
// is capped at GrenadeMaxSpeed; a throw at the avatar's own position stays put.
func NewGrenade(pos, target core.Vec2, damage, blast, fuse float64) Grenade {
	g := Grenade{
		Pos:     pos,
		Radius:  GrenadeRadius,
		Damage:  damage,
		Blast:   blast,
		Fuse:    fuse,
		MaxFuse: fuse,
	}
	d := target.Sub(pos)
	if dir, ok := d.Normalize(); ok {
		g.Vel = dir.Scale(math.Min(d.Len()/30, GrenadeMaxSpeed))
	}
	return g
}

// Update advances one tick inside bounds and reports whether it should explode
func (g *Grenade) Update(bounds core.Rect) bool {
	g.Vel = g.Vel.Scale(grenadeFriction)
	g.Pos = g.Pos.Add(g.Vel)

	if g.Pos.X < g.Radius || g.Pos.X > bounds.W-g.Radius {
		g.Vel.X *= grenadeRestitute
		g.Bounces++
	}
	if g.Pos.Y < g.Radius || g.Pos.Y > bounds.H-g.Radius {
		g.Vel.Y *= grenadeRestitute
		g.Bounces++
	}
	g.Pos = bounds.Clamp(g.Pos, g.Radius)

	core.Countdown(&g.Fuse)
	return g.Fuse <= 0 || g.Bounces > GrenadeMaxBounces
}
