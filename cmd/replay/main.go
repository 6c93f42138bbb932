package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1siamBot/code-crash/engine/config"
	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/network"
)

// eventLog prints the run's milestones as the replay reaches them
type eventLog struct {
	core.NopSink
	verbose bool
}

func (e eventLog) OnWaveStart(wave int) {
	if e.verbose {
		log.Printf("wave %d", wave)
	}
}

func (e eventLog) OnLevelUp(level int) {
	if e.verbose {
		log.Printf("level %d", level)
	}
}

func (e eventLog) OnFeatureUnlock(feature string) {
	if e.verbose {
		log.Printf("unlock: %s", feature)
	}
}

func (e eventLog) OnGameOver(s core.RunSummary) {
	log.Printf("game over: wave %d, level %d, score %d, %d kills", s.Wave, s.Level, s.Score, s.Kills)
}

func main() {
	cfg := config.Default()
	if loaded, err := config.Load(".env"); err == nil {
		cfg = loaded
	} else {
		log.Printf("config: %v (using defaults)", err)
	}
	path := flag.String("file", cfg.ReplayPath, "replay file to play back")
	limit := flag.Uint64("limit", 60*60*60, "stop after this many ticks")
	verbose := flag.Bool("v", false, "log waves, levels and unlocks")
	flag.Parse()
	if *path == "" && flag.NArg() > 0 {
		*path = flag.Arg(0)
	}
	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: replay [-v] [-limit N] -file run.ccr")
		os.Exit(2)
	}

	r, err := network.LoadReplay(*path)
	if r == nil {
		log.Fatal(err)
	}
	if err != nil {
		log.Printf("warning: %v", err)
	}
	log.Printf("replay %s: seed %d, %.0fx%.0f, %d commands through tick %d",
		*path, r.Header.Seed, r.Header.Width, r.Header.Height, len(r.Commands), r.LastTick())

	w := network.NewWorldFromHeader(r.Header, eventLog{verbose: *verbose})
	s := network.Play(r, w, *limit)

	fmt.Printf("ticks     %d\n", s.Tick)
	fmt.Printf("wave      %d\n", s.Wave)
	fmt.Printf("level     %d\n", s.Level)
	fmt.Printf("score     %d\n", s.Score)
	fmt.Printf("kills     %d\n", s.Kills)
	fmt.Printf("health    %d/%d\n", s.Health, s.MaxHealth)
	fmt.Printf("weapon    %s\n", s.WeaponName)
	fmt.Printf("sessionXP %d\n", s.SessionXP)
}
