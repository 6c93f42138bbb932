package sim

import (
	"image/color"
	"math"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/entity"
	"github.com/1siamBot/code-crash/engine/hostile"
	"golang.org/x/image/colornames"
)

const (
	CritMultiplier     = 2.0
	SplashFactor       = 0.5 // splash base damage relative to the projectile
	HitKnockback       = 10.0
	BlastKnockback     = 20.0
	ContactKnockback   = 20.0
	hitParticles       = 10
	critParticles      = 5
	explosionParticles = 30
)

var (
	explosionPalette = []color.RGBA{
		{0xff, 0x00, 0x66, 0xff},
		{0xff, 0x66, 0x00, 0xff},
		{0xff, 0xff, 0x00, 0xff},
		{0xff, 0x33, 0x00, 0xff},
	}
	hurtColor = colornames.Red
	critColor = colornames.Yellow
)

// Falloff is the linear splash scale at distance d from the centre of a
// blast of radius r: 1 at the centre, 0 at and beyond the edge.
func Falloff(d, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Max(0, 1-d/r)
}

// resolveProjectileHits tests every projectile against the hostiles in
// slot order. A projectile damages at most the first hostile it overlaps
// this tick, so when two hostiles overlap one shot, slot order decides.
func (w *World) resolveProjectileHits() {
	w.projectiles.Each(func(ph core.Handle, p *entity.Projectile) {
		var (
			target core.Handle
			found  bool
		)
		w.hostiles.Each(func(hh core.Handle, h *hostile.Hostile) {
			if found || p.HasHit(hh) {
				return
			}
			if core.Overlaps(p.Pos, p.Radius, h.Pos, h.Radius) {
				target, found = hh, true
			}
		})
		if !found {
			return
		}
		w.hitHostile(target, p)
		if p.RegisterHit(target) {
			w.projectiles.Kill(ph)
		}
	})
}

func (w *World) hitHostile(hh core.Handle, p *entity.Projectile) {
	h := w.hostiles.Get(hh)
	crit := w.rng.Float64() < w.mods.CritChance
	damage := p.Damage
	c := h.Color
	if crit {
		damage *= CritMultiplier
		c = critColor
	}
	h.TakeDamage(damage)
	w.fx.Burst(w.rng, p.Pos, entity.Burst{Count: hitParticles, MinSpeed: 2, SpeedVar: 4, MinSize: 3, SizeVar: 3, Color: c})
	if crit {
		w.fx.Burst(w.rng, p.Pos, entity.Burst{Count: critParticles, MinSpeed: 5, MinSize: 6, Color: critColor})
	}

	push := h.Pos.Sub(p.Pos)
	if push.IsZero() {
		push = p.Vel
	}
	h.Knockback(push, HitKnockback)

	if h.Dead() {
		w.killHostile(hh)
	}
	if p.Explosive() {
		w.explode(p.Pos, p.Splash, p.Damage*SplashFactor)
	}
}

// explode damages every live hostile within radius of pos with linear
// falloff and shoves it outward.
func (w *World) explode(pos core.Vec2, radius, damage float64) {
	w.fx.Burst(w.rng, pos, entity.Burst{Count: explosionParticles, MinSpeed: 2, SpeedVar: 6, MinSize: 8, Palette: explosionPalette})
	w.hostiles.Each(func(hh core.Handle, h *hostile.Hostile) {
		d := h.Pos.DistanceTo(pos)
		if d >= radius {
			return
		}
		f := Falloff(d, radius)
		h.TakeDamage(damage * f)
		h.Knockback(h.Pos.Sub(pos), BlastKnockback*f)
		if h.Dead() {
			w.killHostile(hh)
		}
	})
}

// resolveContact applies contact damage from every overlapping hostile.
// Armor scales the damage before the shield absorbs it; invulnerability
// after the first accepted hit ignores the rest.
func (w *World) resolveContact() {
	av := w.avatar
	w.hostiles.Each(func(_ core.Handle, h *hostile.Hostile) {
		if !core.Overlaps(av.Pos, av.Radius, h.Pos, h.Radius) {
			return
		}
		if _, ok := av.TakeDamage(h.Damage * (1 - w.mods.Armor)); ok {
			w.fx.Burst(w.rng, av.Pos, entity.Burst{Count: hitParticles, MinSpeed: 2, SpeedVar: 4, MinSize: 3, SizeVar: 3, Color: hurtColor})
		}
		normal := h.Pos.Sub(av.Pos)
		if normal.IsZero() {
			normal = core.FromAngle(h.Angle+math.Pi, 1)
		}
		h.Knockback(normal, ContactKnockback)
	})
}

// killHostile schedules removal and queues the kill credit. A hostile
// already scheduled is ignored so each death is credited once.
func (w *World) killHostile(hh core.Handle) {
	h := w.hostiles.Get(hh)
	if h == nil || !w.hostiles.Kill(hh) {
		return
	}
	w.deaths = append(w.deaths, *h)
}
