// Package wave is the spawn director: per-wave quotas, staggered spawn
// scheduling, clear detection and the inter-wave countdown.
package wave

import "github.com/1siamBot/code-crash/engine/core"

// Phase is the director state within one wave cycle
type Phase uint8

const (
	// Idle means no wave is scheduled (before start or after cancel)
	Idle Phase = iota
	// Spawning means the quota is not yet fully spawned
	Spawning
	// Clearing means every hostile is out and the wave waits to be cleared
	Clearing
	// Interlude is the countdown between a cleared wave and the next
	Interlude
)

func (p Phase) String() string {
	switch p {
	case Spawning:
		return "spawning"
	case Clearing:
		return "clearing"
	case Interlude:
		return "interlude"
	}
	return "idle"
}

const (
	TutorialQuota    = 2
	TutorialInterval = 60.0 // ticks
)

// Quota returns how many hostiles wave spawns
func Quota(wave int, tutorial bool) int {
	switch {
	case tutorial:
		return TutorialQuota
	case wave <= 1:
		return 2
	case wave == 2:
		return 3
	case wave <= 5:
		return 3 + wave
	}
	return 5 + wave*3/2
}

// SpawnInterval is the stagger between consecutive spawns, in ticks
func SpawnInterval(wave int, tutorial bool) float64 {
	switch {
	case tutorial:
		return TutorialInterval
	case wave <= 3:
		return 48
	case wave <= 5:
		return 36
	}
	return 24
}

// InterWaveDelay is the countdown after a clear, shorter for later waves
func InterWaveDelay(wave int) float64 {
	if wave <= 3 {
		return 180
	}
	return 120
}

var unlocks = map[int]string{
	3:  "Fast Enemies",
	5:  "Tank Enemies",
	7:  "Boss Enemies",
	10: "Elite Weapons",
	15: "Legendary Tier",
}

// FeatureUnlock returns the feature announced when wave begins, if any
func FeatureUnlock(wave int) (string, bool) {
	f, ok := unlocks[wave]
	return f, ok
}

// Director schedules spawns and tracks per-wave counts. It is driven by the
// world tick; nothing here runs on its own timer.
type Director struct {
	Tutorial bool

	wave      int
	phase     Phase
	total     int
	spawned   int
	killed    int
	interval  float64
	nextSpawn float64
	delay     float64
	announced map[int]bool
}

// NewDirector returns an idle director
func NewDirector(tutorial bool) *Director {
	return &Director{Tutorial: tutorial, announced: make(map[int]bool)}
}

func (d *Director) Wave() int      { return d.wave }
func (d *Director) Phase() Phase   { return d.phase }
func (d *Director) Total() int     { return d.total }
func (d *Director) Spawned() int   { return d.spawned }
func (d *Director) Killed() int    { return d.killed }
func (d *Director) Delay() float64 { return d.delay }

// Begin resets the per-wave counters and schedules wave's spawns, the
// first one immediately. It returns a feature unlock the first time a
// milestone wave begins.
func (d *Director) Begin(wave int) (string, bool) {
	d.wave = wave
	d.phase = Spawning
	d.total = Quota(wave, d.Tutorial)
	d.spawned = 0
	d.killed = 0
	d.interval = SpawnInterval(wave, d.Tutorial)
	d.nextSpawn = 0
	d.delay = 0

	if d.Tutorial || d.announced[wave] {
		return "", false
	}
	f, ok := FeatureUnlock(wave)
	if ok {
		d.announced[wave] = true
	}
	return f, ok
}

// Pump runs the spawn schedule for one tick. spawn reports whether the
// hostile was actually placed; a refused spawn stays due and is retried
// next tick rather than lost.
func (d *Director) Pump(spawn func() bool) {
	if d.phase != Spawning {
		return
	}
	if d.nextSpawn <= 0 && spawn() {
		d.spawned++
		d.nextSpawn = d.interval
		if d.spawned >= d.total {
			d.phase = Clearing
			return
		}
	}
	core.Countdown(&d.nextSpawn)
}

// RecordKill counts a hostile death against the current wave
func (d *Director) RecordKill() {
	if d.phase == Spawning || d.phase == Clearing {
		d.killed++
	}
}

// Cleared reports whether the wave is done: quota spawned, quota killed
// and nothing left alive.
func (d *Director) Cleared(live int) bool {
	return d.phase == Clearing && d.spawned == d.total && d.killed >= d.total && live == 0
}

// BeginInterlude starts the countdown to the next wave
func (d *Director) BeginInterlude() {
	d.phase = Interlude
	d.delay = InterWaveDelay(d.wave)
}

// TickInterlude counts the inter-wave delay down and reports true on the
// tick it reaches zero.
func (d *Director) TickInterlude() bool {
	if d.phase != Interlude {
		return false
	}
	core.Countdown(&d.delay)
	return d.delay == 0
}

// Cancel drops any pending spawns and countdowns
func (d *Director) Cancel() {
	d.phase = Idle
	d.nextSpawn = 0
	d.delay = 0
}
