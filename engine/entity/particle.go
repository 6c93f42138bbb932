package entity

import (
	"image/color"

	"github.com/1siamBot/code-crash/engine/core"
)

const particleFriction = 0.95

// Particle is visual decoration only
type Particle struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Color   color.RGBA
	Size    float64
	Life    float64
	MaxLife float64
}

func (p *Particle) Update() {
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel = p.Vel.Scale(particleFriction)
	core.Countdown(&p.Life)
}

// Alpha is the remaining life fraction, used for fade-out
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}
