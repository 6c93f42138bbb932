package entity

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/1siamBot/code-crash/engine/core"
)

func TestNewGrenadeSpeed(t *testing.T) {
	tests := []struct {
		name   string
		target core.Vec2
		want   float64
	}{
		{"own position", core.V(100, 100), 0},
		{"near", core.V(400, 100), 10},
		{"far capped", core.V(1000, 100), GrenadeMaxSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrenade(core.V(100, 100), tt.target, 50, 100, 120)
			if math.Abs(g.Vel.Len()-tt.want) > 1e-9 {
				t.Fatalf("speed = %v, want %v", g.Vel.Len(), tt.want)
			}
		})
	}
}

func TestGrenadeBounce(t *testing.T) {
	bounds := core.Rect{W: 200, H: 200}
	g := NewGrenade(core.V(195, 100), core.V(195, 100), 50, 100, 120)
	g.Vel = core.V(10, 0)
	if g.Update(bounds) {
		t.Fatal("exploded on first bounce")
	}
	if g.Bounces != 1 || g.Vel.X >= 0 {
		t.Fatalf("bounces %d, vel %v", g.Bounces, g.Vel)
	}
	if g.Pos.X != bounds.W-GrenadeRadius {
		t.Fatalf("pos %v not clamped inside", g.Pos)
	}
}

func TestGrenadeExplodes(t *testing.T) {
	bounds := core.Rect{W: 200, H: 200}

	g := NewGrenade(core.V(100, 100), core.V(100, 100), 50, 100, 2)
	if g.Update(bounds) {
		t.Fatal("exploded with fuse left")
	}
	if !g.Update(bounds) {
		t.Fatal("fuse burnt down without exploding")
	}

	g = NewGrenade(core.V(5, 100), core.V(5, 100), 50, 100, 120)
	g.Bounces = GrenadeMaxBounces
	g.Vel = core.V(-1, 0)
	if !g.Update(bounds) {
		t.Fatal("bounce limit should explode")
	}
}

func TestProjectileTrail(t *testing.T) {
	p := NewProjectile(core.V(0, 0), core.V(1, 0), 10, 0, 0, color.RGBA{})
	if p.Radius != BulletRadius || p.Explosive() {
		t.Fatalf("plain shot radius %v explosive %v", p.Radius, p.Explosive())
	}
	for i := 0; i < 10; i++ {
		p.Update()
	}
	trail := p.Trail()
	if len(trail) != TrailLen {
		t.Fatalf("trail len = %d", len(trail))
	}
	if trail[0] != core.V(2, 0) || trail[TrailLen-1] != core.V(9, 0) || p.Pos != core.V(10, 0) {
		t.Fatalf("trail %v, pos %v", trail, p.Pos)
	}

	r := NewProjectile(core.V(0, 0), core.V(1, 0), 40, 0, 100, color.RGBA{})
	if r.Radius != RocketRadius || !r.Explosive() {
		t.Fatal("splash shot should use the rocket radius")
	}
}

func TestProjectilePierce(t *testing.T) {
	p := NewProjectile(core.V(0, 0), core.V(1, 0), 10, 1, 0, color.RGBA{})
	a, b := core.Handle{Index: 1, Gen: 1}, core.Handle{Index: 2, Gen: 1}
	if p.HasHit(a) {
		t.Fatal("fresh projectile remembers a hit")
	}
	if p.RegisterHit(a) {
		t.Fatal("pierce 1 spent after one hit")
	}
	if !p.HasHit(a) || p.HasHit(b) {
		t.Fatal("hit memory wrong")
	}
	if !p.RegisterHit(b) {
		t.Fatal("second hit should spend the shot")
	}

	q := NewProjectile(core.V(0, 0), core.V(1, 0), 10, 20, 0, color.RGBA{})
	for i := 0; i < 20; i++ {
		if q.RegisterHit(core.Handle{Index: uint32(i), Gen: 1}) {
			t.Fatalf("pierce 20 spent after %d hits", i+1)
		}
	}
	for i := 0; i < 20; i++ {
		if !q.HasHit(core.Handle{Index: uint32(i), Gen: 1}) {
			t.Fatalf("forgot hostile %d after 20 hits", i)
		}
	}
	if !q.RegisterHit(core.Handle{Index: 20, Gen: 1}) {
		t.Fatal("21st hit should spend a pierce 20 shot")
	}
}

func TestParticleFade(t *testing.T) {
	p := Particle{Vel: core.V(2, 0), Life: 2, MaxLife: 4}
	if p.Alpha() != 0.5 {
		t.Fatalf("alpha = %v", p.Alpha())
	}
	p.Update()
	if p.Pos != core.V(2, 0) || p.Vel.X != 2*particleFriction || p.Life != 1 {
		t.Fatalf("after update %+v", p)
	}
	if (&Particle{}).Alpha() != 0 {
		t.Fatal("zero max life should be transparent")
	}
}

func TestPickupExpires(t *testing.T) {
	p := NewPickup(core.V(10, 10), 0)
	for i := 1; i < int(PickupLifetime); i++ {
		if !p.Update() {
			t.Fatalf("expired early at tick %d", i)
		}
	}
	if p.Update() {
		t.Fatal("pickup outlived its lifetime")
	}
}

func TestEffects(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var fx Effects
	if !fx.Empty() {
		t.Fatal("zero buffer not empty")
	}
	fx.Burst(rng, core.V(0, 0), Burst{Count: 5, MinSpeed: 1, SpeedVar: 2, MinSize: 1, SizeVar: 1,
		Palette: []color.RGBA{{R: 1}, {G: 1}}})
	if len(fx.Particles) != 5 {
		t.Fatalf("burst emitted %d", len(fx.Particles))
	}
	for _, p := range fx.Particles {
		if p.Life < 30 || p.Life > 50 || p.Life != p.MaxLife {
			t.Fatalf("particle life %v/%v", p.Life, p.MaxLife)
		}
	}

	fx.Reset()
	fx.Ring(rng, core.V(50, 50), 4, 10, 1, 2, color.RGBA{})
	for _, p := range fx.Particles {
		if d := p.Pos.DistanceTo(core.V(50, 50)); math.Abs(d-10) > 1e-9 {
			t.Fatalf("ring particle at distance %v", d)
		}
	}
	fx.Throw(Grenade{})
	fx.Fire(Projectile{})
	fx.Reset()
	if !fx.Empty() {
		t.Fatal("reset left effects queued")
	}
}
