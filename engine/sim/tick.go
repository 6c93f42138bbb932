package sim

import (
	"math"

	"github.com/1siamBot/code-crash/engine/avatar"
	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/entity"
	"github.com/1siamBot/code-crash/engine/hostile"
	"github.com/1siamBot/code-crash/engine/upgrade"
)

const (
	// ComboWindow is how long a combo survives without a kill, in ticks
	ComboWindow = 120.0
	// ProjectileMargin is how far past the canvas a projectile may travel
	ProjectileMargin = 50.0
	gridSize         = 40.0
)

// system is one ordered step of the tick. Gated systems are skipped while
// an upgrade offer is pending; the ungated ones hold spawns, fire and
// combo decay during an offer.
type system struct {
	name     string
	priority int
	gated    bool
	run      func(w *World)
}

func defaultSystems() []system {
	return []system{
		{"timers", 10, false, (*World).updateTimers},
		{"director", 20, false, (*World).updateDirector},
		{"avatar", 30, false, (*World).updateAvatar},
		{"projectiles", 40, true, (*World).updateProjectiles},
		{"projectile-hits", 50, true, (*World).resolveProjectileHits},
		{"hostiles", 60, true, (*World).updateHostiles},
		{"contact", 70, true, (*World).resolveContact},
		{"kills", 80, true, (*World).creditKills},
		{"grenades", 90, true, (*World).updateGrenades},
		{"pickups", 100, true, (*World).updatePickups},
		{"particles", 110, true, (*World).updateParticles},
		{"wave-clear", 120, true, (*World).checkWaveClear},
		{"stats", 130, false, (*World).emitStats},
		{"game-over", 140, false, (*World).checkGameOver},
	}
}

// Tick advances the world one fixed step. Nothing happens while paused
// or after the run ended.
func (w *World) Tick() {
	if !w.running || w.paused {
		return
	}
	w.tick++
	for _, s := range w.systems {
		if s.gated && w.offer != nil {
			continue
		}
		s.run(w)
		w.flush()
		if !w.running {
			break
		}
	}
	w.sweep()
	w.input.Dash = false
}

func (w *World) updateTimers() {
	w.gridOffset = math.Mod(w.gridOffset+0.5, gridSize)
	if w.combo > 0 && w.offer == nil {
		core.Countdown(&w.comboTimer)
		if w.comboTimer == 0 {
			w.combo = 0
		}
	}
}

func (w *World) updateDirector() {
	if w.director.TickInterlude() {
		w.beginWave(w.director.Wave() + 1)
	}
	w.director.Pump(w.spawnHostile)
}

// spawnHostile places one hostile just off-screen. It refuses while the
// run is not advancing or an offer is pending so a due spawn is retried
// instead of lost.
func (w *World) spawnHostile() bool {
	if !w.running || w.paused || w.offer != nil {
		return false
	}
	pos := hostile.SpawnPoint(w.rng, w.bounds)
	kind := hostile.PickKind(w.rng, w.director.Wave(), w.tutorial)
	w.hostiles.Insert(hostile.New(kind, pos, w.director.Wave(), w.tutorial))
	return true
}

func (w *World) avatarContext() avatar.Context {
	return avatar.Context{Mods: &w.mods, Bounds: w.bounds, Rng: w.rng, FX: &w.fx}
}

// updateAvatar keeps the avatar moving during an offer but holds fire,
// since the projectile systems are not advancing.
func (w *World) updateAvatar() {
	in := w.input
	if w.offer != nil {
		in.Fire = false
	}
	w.avatar.Update(w.avatarContext(), in)
}

func (w *World) updateProjectiles() {
	w.projectiles.Each(func(h core.Handle, p *entity.Projectile) {
		p.Update()
		if !w.bounds.Contains(p.Pos, ProjectileMargin) {
			w.projectiles.Kill(h)
		}
	})
}

func (w *World) updateHostiles() {
	target := w.avatar.Pos
	w.hostiles.Each(func(_ core.Handle, h *hostile.Hostile) {
		h.Update(target)
	})
}

func (w *World) updateGrenades() {
	w.grenades.Each(func(h core.Handle, g *entity.Grenade) {
		if g.Update(w.bounds) {
			w.grenades.Kill(h)
			w.explode(g.Pos, g.Blast, g.Damage)
		}
	})
	w.creditKills()
}

func (w *World) updatePickups() {
	av := w.avatar
	w.pickups.Each(func(h core.Handle, p *entity.Pickup) {
		if w.offer == nil && core.Overlaps(p.Pos, p.Radius, av.Pos, av.Radius) {
			p.Collected = true
			w.pickups.Kill(h)
			w.openOffer()
			return
		}
		if !p.Update() {
			w.pickups.Kill(h)
		}
	})
}

func (w *World) updateParticles() {
	w.particles.Each(func(h core.Handle, p *entity.Particle) {
		p.Update()
		if p.Life <= 0 {
			w.particles.Kill(h)
		}
	})
}

func (w *World) checkWaveClear() {
	if w.director.Cleared(w.hostiles.Live()) {
		w.director.BeginInterlude()
	}
}

func (w *World) emitStats() {
	w.sink.OnStats(w.Stats())
}

func (w *World) checkGameOver() {
	if !w.avatar.Dead() {
		return
	}
	w.over = true
	w.running = false
	w.director.Cancel()
	w.endRun(true)
}

func (w *World) openOffer() {
	w.offer = upgrade.Offer(w.rng, upgrade.OfferSize)
	w.sink.OnUpgradeOffer(append([]core.UpgradeOption(nil), w.offer...))
}
