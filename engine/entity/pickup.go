package entity

import "github.com/1siamBot/code-crash/engine/core"

const (
	PickupRadius   = 15.0
	PickupLifetime = 600.0 // ticks
)

// Pickup is a code fragment dropped by a dead hostile
type Pickup struct {
	Pos       core.Vec2
	Radius    float64
	Life      float64
	Bob       float64
	Rotation  float64
	Collected bool
}

func NewPickup(pos core.Vec2, bob float64) Pickup {
	return Pickup{Pos: pos, Radius: PickupRadius, Life: PickupLifetime, Bob: bob}
}

// Update animates and ages the pickup. It returns false once expired.
func (p *Pickup) Update() bool {
	p.Bob += 0.1
	p.Rotation += 0.05
	core.Countdown(&p.Life)
	return p.Life > 0
}
