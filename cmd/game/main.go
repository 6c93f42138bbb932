package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/1siamBot/code-crash/engine/config"
	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/input"
	"github.com/1siamBot/code-crash/engine/network"
	"github.com/1siamBot/code-crash/engine/render"
	"github.com/1siamBot/code-crash/engine/sim"
	"github.com/1siamBot/code-crash/engine/storage"
	"github.com/1siamBot/code-crash/engine/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const replayVersion = 1

// Game implements ebiten.Game interface
type Game struct {
	cfg   config.Config
	store *storage.Store
	feed  *network.Feed

	menu     *ui.MenuSystem
	hud      *ui.HUD
	renderer *render.Renderer
	input    *input.Poller

	world    *sim.World
	session  *network.Session
	gameLoop *core.GameLoop
	runs     int
	exit     atomic.Bool

	screenW, screenH int
}

func NewGame(cfg config.Config, store *storage.Store, feed *network.Feed) *Game {
	g := &Game{
		cfg:      cfg,
		store:    store,
		feed:     feed,
		hud:      ui.NewHUD(cfg.Width, cfg.Height),
		renderer: render.NewRenderer(),
		input:    input.NewPoller(),
		screenW:  cfg.Width,
		screenH:  cfg.Height,
	}

	profile, err := store.Load(context.Background(), cfg.ProfileID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Printf("new profile %q", cfg.ProfileID)
	case err != nil:
		log.Printf("load profile %q: %v (using defaults)", cfg.ProfileID, err)
	}

	g.menu = ui.NewMenuSystem(cfg.Width, cfg.Height, profile)
	g.menu.OnStartGame = g.startRun
	g.menu.OnExitGame = func() { g.exit.Store(true) }
	g.menu.OnUnlockWeapon = func(id string) (core.Profile, error) {
		return store.UnlockWeapon(context.Background(), cfg.ProfileID, id)
	}
	g.menu.OnEquipWeapon = func(id string) (core.Profile, error) {
		return store.Equip(context.Background(), cfg.ProfileID, id)
	}
	g.menu.OnBuyUpgrade = func(id string) (core.Profile, error) {
		return store.BuyUpgrade(context.Background(), cfg.ProfileID, id)
	}

	if cfg.Tutorial {
		g.startRun(true)
		g.menu.State = ui.StatePlaying
	}
	return g
}

func (g *Game) startRun(tutorial bool) {
	g.endRun()
	g.runs++

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	hdr := network.ReplayHeader{
		Version:  replayVersion,
		Seed:     seed,
		Width:    float64(g.screenW),
		Height:   float64(g.screenH),
		Tutorial: tutorial,
		WeaponID: g.cfg.Weapon,
		Profile:  g.menu.Profile,
	}

	sinks := core.Sinks{g.hud, g.menu, &storage.RunSaver{
		Store:     g.store,
		ProfileID: g.cfg.ProfileID,
		Tutorial:  tutorial,
		Saved:     func(p core.Profile) { g.menu.Profile = p },
	}}
	if g.feed != nil {
		sinks = append(sinks, g.feed)
	}

	var rec *network.Replay
	if g.cfg.RecordPath != "" {
		path := runPath(g.cfg.RecordPath, g.runs)
		var err error
		if rec, err = network.NewReplayRecorder(path, hdr); err != nil {
			log.Printf("replay: %v (not recording)", err)
			rec = nil
		} else {
			log.Printf("recording run %d to %s", g.runs, path)
		}
	}

	g.hud.Reset()
	g.world = network.NewWorldFromHeader(hdr, sinks)
	g.session = network.NewSession(g.world, rec)
	g.gameLoop = core.NewGameLoop(g.world, float64(g.cfg.TickRate))
	g.world.Start()
	log.Printf("run %d started (seed %d, tutorial %v, weapon %s)", g.runs, seed, tutorial, g.world.Avatar().Weapon.ID)
}

// endRun stops the current run, if any, and finishes its recording
func (g *Game) endRun() {
	if g.session == nil {
		return
	}
	if g.world.Running() {
		g.session.Issue(network.Command{Type: network.CmdStop})
	}
	if err := g.session.Close(); err != nil {
		log.Printf("replay: close: %v", err)
	}
	g.session = nil
}

// runPath numbers every run after the first so recordings are not overwritten
func runPath(path string, run int) string {
	if run <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), run, ext)
}

func (g *Game) Update() error {
	if g.exit.Load() {
		g.endRun()
		return ebiten.Termination
	}

	if g.menu.State != ui.StatePlaying {
		g.menu.Update(1.0 / float64(ebiten.TPS()))
		if g.session != nil && !g.world.Running() && g.menu.State != ui.StateGameOver {
			g.endRun()
		}
		return nil
	}

	in, act := g.input.Update()
	s := g.session

	if w, h := g.screenW, g.screenH; float64(w) != g.world.Bounds().W || float64(h) != g.world.Bounds().H {
		s.Issue(network.Command{Type: network.CmdResize, X: float32(w), Y: float32(h)})
		g.hud.Resize(w, h)
		g.menu.ScreenW, g.menu.ScreenH = w, h
	}

	if g.hud.ShopOpen() {
		g.updateShop(act)
		in.Fire = false
		s.Input(in)
		g.gameLoop.Resync()
		g.hud.Update()
		return nil
	}
	if act.Shop && g.world.Offer() == nil && !g.world.Paused() {
		if s.Issue(network.Command{Type: network.CmdPause}) {
			g.hud.OpenShop()
		}
	} else if act.Pause {
		s.Issue(network.Command{Type: network.CmdPause})
	}
	if offer := g.world.Offer(); offer != nil {
		pick := act.Choose
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			if i := g.hud.HandleClick(g.input.MouseX, g.input.MouseY); i > 0 {
				pick = i
			}
		}
		if pick > 0 && pick <= len(offer) && s.Issue(network.Command{Type: network.CmdChoose, Param: offer[pick-1].ID}) {
			g.hud.ClearOffer()
		}
		// the click that picked an upgrade must not also fire
		in.Fire = false
	} else {
		if act.Reload {
			s.Issue(network.Command{Type: network.CmdReload})
		}
		if act.Grenade {
			s.Issue(network.Command{Type: network.CmdGrenade})
		}
		if act.Shield {
			s.Issue(network.Command{Type: network.CmdShield})
		}
	}
	s.Input(in)

	if g.world.Paused() {
		g.gameLoop.Resync()
	} else {
		g.gameLoop.Update()
	}
	g.hud.Update()
	return nil
}

// updateShop runs the shop overlay. The run stays paused while it is open
// and resumes when it closes.
func (g *Game) updateShop(act input.Actions) {
	s := g.session
	if act.Shop || act.Pause || !g.world.Running() {
		g.hud.CloseShop()
		if g.world.Paused() {
			s.Issue(network.Command{Type: network.CmdPause})
		}
		return
	}
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if item, ok := g.hud.ShopPick(act.Choose, clicked, g.input.MouseX, g.input.MouseY); ok {
		s.Issue(network.Command{Type: network.CmdBuy, Param: item.ID})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.menu.State {
	case ui.StatePlaying:
		g.renderer.Draw(screen, g.world)
		g.hud.Draw(screen)
	case ui.StateGameOver:
		g.renderer.Draw(screen, g.world)
		g.menu.Draw(screen)
	default:
		g.menu.Draw(screen)
	}
}

// Layout follows the window within the configured limits. The run picks
// up a new size through a resize command on the next update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	c := g.cfg
	c.Width, c.Height = outsideWidth, outsideHeight
	config.Clamp(&c)
	g.screenW, g.screenH = c.Width, c.Height
	return g.screenW, g.screenH
}

func main() {
	flag.String("env", ".env", "dotenv file with CODECRASH_* settings")
	cfg, err := config.Load(envFileFromArgs(os.Args[1:], ".env"))
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	config.Clamp(&cfg)

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var feed *network.Feed
	if cfg.FeedAddr != "" {
		feed = network.NewFeed(uint64(cfg.StatsEvery))
		go func() {
			if err := feed.ListenAndServe(ctx, cfg.FeedAddr); err != nil {
				log.Printf("feed: %v", err)
			}
		}()
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Code Crash")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := NewGame(cfg, store, feed)
	go func() {
		<-ctx.Done()
		game.exit.Store(true)
	}()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	game.endRun()
}

// envFileFromArgs finds -env before flag parsing, since the file feeds the
// flag defaults
func envFileFromArgs(args []string, def string) string {
	for i, a := range args {
		a = strings.TrimLeft(a, "-")
		switch {
		case strings.HasPrefix(a, "env="):
			return strings.TrimPrefix(a, "env=")
		case a == "env" && i+1 < len(args):
			return args[i+1]
		}
	}
	return def
}
