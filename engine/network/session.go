package network

import (
	"log"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/sim"
)

// Apply performs cmd on w. It reports whether the world accepted it.
func Apply(w *sim.World, cmd Command) bool {
	switch cmd.Type {
	case CmdInput:
		if !w.Running() {
			return false
		}
		w.Feed(cmd.Input())
		return true
	case CmdReload:
		return w.Reload()
	case CmdGrenade:
		return w.ThrowGrenade()
	case CmdShield:
		return w.ActivateShield()
	case CmdPause:
		if !w.Running() {
			return false
		}
		w.TogglePause()
		return true
	case CmdChoose:
		return w.ChooseUpgrade(cmd.Param)
	case CmdResize:
		if !w.Running() {
			return false
		}
		w.Resize(float64(cmd.X), float64(cmd.Y))
		return true
	case CmdStop:
		w.Stop()
		return true
	case CmdBuy:
		return w.BuyShopItem(cmd.Param)
	}
	return false
}

// Session routes every command for one run through Apply, optionally
// recording it. Live play and playback then see identical inputs.
type Session struct {
	World    *sim.World
	recorder *Replay
	last     Command
	haveLast bool
	failed   bool
}

// NewSession wraps w; recorder may be nil
func NewSession(w *sim.World, recorder *Replay) *Session {
	return &Session{World: w, recorder: recorder}
}

// Issue stamps cmd with the current tick, applies and records it.
// Repeated identical input records without a dash edge are applied but
// not written again.
func (s *Session) Issue(cmd Command) bool {
	cmd.Tick = 0
	if cmd.Type == CmdInput && cmd.Buttons&BtnDash == 0 && s.haveLast && cmd == s.last {
		return Apply(s.World, cmd)
	}
	if cmd.Type == CmdInput {
		s.last, s.haveLast = cmd, true
	}
	cmd.Tick = s.World.Ticks()
	ok := Apply(s.World, cmd)
	if s.recorder != nil && !s.failed {
		if err := s.recorder.Record(cmd); err != nil {
			log.Printf("replay: recording disabled: %v", err)
			s.failed = true
		}
	}
	return ok
}

// Input is shorthand for issuing an input record
func (s *Session) Input(in core.Input) bool {
	return s.Issue(InputCommand(0, in))
}

// Close finishes the recording, if any
func (s *Session) Close() error {
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Close()
}

// Play drives w through the recorded commands, ticking between them, until
// the run ends or limit ticks have passed. w must be freshly built from the
// replay header. It returns the final stats.
func Play(r *Replay, w *sim.World, limit uint64) core.Stats {
	w.Start()
	for w.Running() && w.Ticks() < limit {
		for _, cmd := range r.CommandsForTick(w.Ticks()) {
			Apply(w, cmd)
		}
		if !w.Running() {
			break
		}
		if w.Paused() {
			// every command issued during a pause shares this tick, so a
			// world still paused here was never resumed
			break
		}
		w.Tick()
	}
	return w.Stats()
}

// NewWorldFromHeader rebuilds the starting world recorded in hdr
func NewWorldFromHeader(hdr ReplayHeader, sink core.EventSink) *sim.World {
	return sim.New(sim.Options{
		Bounds:   core.Rect{W: hdr.Width, H: hdr.Height},
		Profile:  hdr.Profile,
		Seed:     hdr.Seed,
		Tutorial: hdr.Tutorial,
		WeaponID: hdr.WeaponID,
		Sink:     sink,
	})
}
