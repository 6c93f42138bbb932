package core

import "time"

// DefaultTickRate is the simulation rate. Every tick-denominated constant
// in the engine (cooldowns, fuses, lifetimes) assumes it.
const DefaultTickRate = 60.0

// Ticker advances a simulation by exactly one fixed step
type Ticker interface {
	Tick()
}

// GameLoop manages the fixed-timestep game loop for deterministic simulation
type GameLoop struct {
	Sim         Ticker
	TickRate    float64 // fixed ticks per second
	accumulator float64
	lastTime    time.Time
	ticks       uint64
}

// NewGameLoop creates a game loop with fixed tick rate
func NewGameLoop(sim Ticker, tickRate float64) *GameLoop {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &GameLoop{
		Sim:      sim,
		TickRate: tickRate,
		lastTime: time.Now(),
	}
}

// Update should be called every render frame. It runs the simulation
// at fixed timestep and returns the interpolation alpha for rendering.
func (gl *GameLoop) Update() float64 {
	now := time.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Advance(frameTime)
}

// Advance feeds frameTime seconds into the accumulator and runs as many
// whole ticks as fit.
func (gl *GameLoop) Advance(frameTime float64) float64 {
	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}
	if frameTime < 0 {
		frameTime = 0
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	for gl.accumulator >= dt {
		gl.Sim.Tick()
		gl.ticks++
		gl.accumulator -= dt
	}

	return gl.accumulator / dt
}

// Resync drops accumulated time, used after the host was suspended
func (gl *GameLoop) Resync() {
	gl.accumulator = 0
	gl.lastTime = time.Now()
}

// Ticks returns how many fixed steps the loop has issued
func (gl *GameLoop) Ticks() uint64 {
	return gl.ticks
}
