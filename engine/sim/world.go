// Package sim is the authoritative simulation: it owns every entity arena,
// advances them one fixed tick at a time, resolves collisions and keeps
// the run's score, combo and XP bookkeeping.
package sim

import (
	"log"
	"math/rand"
	"sort"

	"github.com/1siamBot/code-crash/engine/avatar"
	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/entity"
	"github.com/1siamBot/code-crash/engine/hostile"
	"github.com/1siamBot/code-crash/engine/upgrade"
	"github.com/1siamBot/code-crash/engine/wave"
	"github.com/1siamBot/code-crash/engine/weapon"
)

// Options configures a run
type Options struct {
	Bounds   core.Rect
	Profile  core.Profile
	Seed     int64
	Tutorial bool
	WeaponID string // overrides the profile's equipped weapon when set
	Sink     core.EventSink
}

// World is one run. It is not safe for concurrent use; the host calls
// every method from its update goroutine.
type World struct {
	rng      *rand.Rand
	sink     core.EventSink
	bounds   core.Rect
	tutorial bool
	profile  core.Profile

	mods     upgrade.Modifiers
	avatar   *avatar.Avatar
	director *wave.Director

	projectiles core.Arena[entity.Projectile]
	hostiles    core.Arena[hostile.Hostile]
	grenades    core.Arena[entity.Grenade]
	pickups     core.Arena[entity.Pickup]
	particles   core.Arena[entity.Particle]
	fx          entity.Effects
	deaths      []hostile.Hostile

	systems []system
	input   core.Input

	running bool
	paused  bool
	over    bool
	ended   bool
	offer   []core.UpgradeOption

	tick         uint64
	gridOffset   float64
	score        int
	sessionXP    int
	spent        int
	kills        int
	combo        int
	comboTimer   float64
	highestCombo int
}

// New builds a run from the profile snapshot. Unknown or unowned weapon
// ids fall back to the default weapon.
func New(opts Options) *World {
	sink := opts.Sink
	if sink == nil {
		sink = core.NopSink{}
	}
	if opts.Profile.Upgrades == nil {
		opts.Profile.Upgrades = make(map[string]int)
	}

	mods, lo := upgrade.FromProfile(opts.Profile)
	w := &World{
		rng:      rand.New(rand.NewSource(opts.Seed)),
		sink:     sink,
		bounds:   opts.Bounds,
		tutorial: opts.Tutorial,
		profile:  opts.Profile,
		mods:     mods,
		director: wave.NewDirector(opts.Tutorial),
	}

	center := core.V(opts.Bounds.W/2, opts.Bounds.H/2)
	w.avatar = avatar.New(center, w.startingWeapon(opts), lo)
	w.input.Aim = center
	w.systems = defaultSystems()
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].priority < w.systems[j].priority
	})
	return w
}

func (w *World) startingWeapon(opts Options) weapon.Weapon {
	id := opts.WeaponID
	if id == "" {
		id = opts.Profile.Equipped
	}
	if wp, ok := weapon.Lookup(id); ok {
		return wp
	}
	if id != "" {
		log.Printf("sim: unknown weapon %q, using %s", id, core.DefaultWeaponID)
	}
	return weapon.Default()
}

// Start begins wave one. Calling it on a running or finished world does nothing.
func (w *World) Start() {
	if w.running || w.ended {
		return
	}
	w.running = true
	w.beginWave(1)
}

// Stop ends the run early: pending spawns are cancelled, input is dropped
// and the run-end delta is emitted. It is idempotent.
func (w *World) Stop() {
	if w.ended {
		return
	}
	w.running = false
	w.paused = false
	w.director.Cancel()
	w.input = core.Input{}
	w.endRun(false)
}

func (w *World) beginWave(n int) {
	feature, unlocked := w.director.Begin(n)
	w.sink.OnWaveStart(n)
	if unlocked {
		w.sink.OnFeatureUnlock(feature)
	}
}

func (w *World) endRun(died bool) {
	if w.ended {
		return
	}
	w.ended = true
	s := w.Summary()
	s.Died = died
	if died {
		w.sink.OnGameOver(s)
	}
	w.sink.OnRunEnd(s.Delta())
}

// Running reports whether the run accepts input and advances
func (w *World) Running() bool { return w.running }

// Paused reports whether the host paused the run
func (w *World) Paused() bool { return w.paused }

// Over reports whether the avatar died
func (w *World) Over() bool { return w.over }

// Offer returns the pending upgrade options, nil when none
func (w *World) Offer() []core.UpgradeOption { return w.offer }

// Avatar exposes the avatar for rendering. Callers must not mutate it.
func (w *World) Avatar() *avatar.Avatar { return w.avatar }

// Mods returns the current stat modifiers
func (w *World) Mods() upgrade.Modifiers { return w.mods }

func (w *World) Bounds() core.Rect        { return w.bounds }
func (w *World) Ticks() uint64            { return w.tick }
func (w *World) GridOffset() float64      { return w.gridOffset }
func (w *World) Wave() int                { return w.director.Wave() }
func (w *World) Director() *wave.Director { return w.director }
func (w *World) Score() int               { return w.score }
func (w *World) Combo() int               { return w.combo }
func (w *World) ComboTimer() float64      { return w.comboTimer }
func (w *World) Kills() int               { return w.kills }

// Funds is the profile currency left to spend in the shop this run
func (w *World) Funds() int { return w.profile.Currency - w.spent }

// LiveHostiles counts hostiles not scheduled for removal
func (w *World) LiveHostiles() int { return w.hostiles.Live() }

func (w *World) EachHostile(fn func(h *hostile.Hostile)) {
	w.hostiles.Each(func(_ core.Handle, h *hostile.Hostile) { fn(h) })
}

func (w *World) EachProjectile(fn func(p *entity.Projectile)) {
	w.projectiles.Each(func(_ core.Handle, p *entity.Projectile) { fn(p) })
}

func (w *World) EachGrenade(fn func(g *entity.Grenade)) {
	w.grenades.Each(func(_ core.Handle, g *entity.Grenade) { fn(g) })
}

func (w *World) EachPickup(fn func(p *entity.Pickup)) {
	w.pickups.Each(func(_ core.Handle, p *entity.Pickup) { fn(p) })
}

func (w *World) EachParticle(fn func(p *entity.Particle)) {
	w.particles.Each(func(_ core.Handle, p *entity.Particle) { fn(p) })
}

// flush moves everything queued in the effects buffer into the arenas
func (w *World) flush() {
	if w.fx.Empty() {
		return
	}
	for _, p := range w.fx.Projectiles {
		w.projectiles.Insert(p)
	}
	for _, g := range w.fx.Grenades {
		w.grenades.Insert(g)
	}
	for _, p := range w.fx.Particles {
		w.particles.Insert(p)
	}
	w.fx.Reset()
}

func (w *World) sweep() {
	w.projectiles.Sweep()
	w.hostiles.Sweep()
	w.grenades.Sweep()
	w.pickups.Sweep()
	w.particles.Sweep()
}
