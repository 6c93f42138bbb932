package storage

import (
	"context"
	"log"
	"time"

	"github.com/1siamBot/code-crash/engine/core"
)

// RunSaver is an event sink that folds every finished run into one
// stored profile
type RunSaver struct {
	core.NopSink
	Store     *Store
	ProfileID string
	Tutorial  bool
	Timeout   time.Duration

	// Saved is called with the merged profile after a successful save
	Saved func(core.Profile)
}

// OnRunEnd saves the run's contribution. Failures are logged; the run
// itself is already over.
func (s *RunSaver) OnRunEnd(delta core.ProfileDelta) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p, err := s.Store.ApplyRunEnd(ctx, s.ProfileID, delta)
	if err != nil {
		log.Printf("storage: save run for %q: %v", s.ProfileID, err)
		return
	}
	if s.Tutorial && !p.TutorialComplete {
		if p, err = s.Store.CompleteTutorial(ctx, s.ProfileID); err != nil {
			log.Printf("storage: mark tutorial complete for %q: %v", s.ProfileID, err)
			return
		}
	}
	log.Printf("storage: run saved for %q (+%d currency, %d total)", s.ProfileID, delta.EarnedCurrency, p.Currency)
	if s.Saved != nil {
		s.Saved(p)
	}
}

var _ core.EventSink = (*RunSaver)(nil)
