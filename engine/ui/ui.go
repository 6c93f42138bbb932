package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// NoticeTicks is how long a notification stays on screen
const NoticeTicks = 150

type notice struct {
	text  string
	color color.RGBA
	ttl   int
}

// HUD is the in-run heads-up display. It implements core.EventSink and
// keeps the latest snapshot it was sent; the host draws it after the scene.
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int

	stats    core.Stats
	offer    []core.UpgradeOption
	notices  []notice
	paused   bool
	shopOpen bool
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{ScreenW: sw, ScreenH: sh, TopBarHeight: 30}
}

// Reset clears per-run state before a new run
func (h *HUD) Reset() {
	h.stats = core.Stats{}
	h.offer = nil
	h.notices = h.notices[:0]
	h.paused = false
	h.shopOpen = false
}

// Resize follows the window size
func (h *HUD) Resize(w, ht int) {
	h.ScreenW, h.ScreenH = w, ht
}

// Offer is the upgrade choice currently shown, if any
func (h *HUD) Offer() []core.UpgradeOption { return h.offer }

// ClearOffer hides the upgrade menu after a choice
func (h *HUD) ClearOffer() { h.offer = nil }

// Update ages notifications; call once per frame
func (h *HUD) Update() {
	kept := h.notices[:0]
	for _, n := range h.notices {
		n.ttl--
		if n.ttl > 0 {
			kept = append(kept, n)
		}
	}
	h.notices = kept
}

func (h *HUD) notify(text string, c color.RGBA) {
	h.notices = append(h.notices, notice{text: text, color: c, ttl: NoticeTicks})
	if len(h.notices) > 4 {
		h.notices = h.notices[len(h.notices)-4:]
	}
}

func (h *HUD) OnStats(s core.Stats) { h.stats = s }

func (h *HUD) OnUpgradeOffer(options []core.UpgradeOption) {
	h.offer = options
	h.notify("CODE FRAGMENT ACQUIRED", menuGold)
}

func (h *HUD) OnFeatureUnlock(feature string) {
	h.notify("UNLOCKED: "+feature, menuGreen)
}

func (h *HUD) OnCombo(combo int, message string) {
	h.notify(fmt.Sprintf("%dx %s", combo, message), menuAccent)
}

func (h *HUD) OnLevelUp(level int) {
	h.notify(fmt.Sprintf("LEVEL UP! LV %d", level), colornames.Lime)
}

func (h *HUD) OnWaveStart(wave int) {
	h.notify(fmt.Sprintf("WAVE %d", wave), colornames.White)
}

func (h *HUD) OnPauseChange(paused bool) { h.paused = paused }

func (h *HUD) OnGameOver(core.RunSummary) {
	h.offer = nil
	h.shopOpen = false
	h.notify("SYSTEM FAILURE", menuRed)
}

func (h *HUD) OnRunEnd(core.ProfileDelta) {}

var _ core.EventSink = (*HUD)(nil)

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image) {
	h.drawTopBar(screen)
	h.drawVitals(screen)
	h.drawNotices(screen)
	switch {
	case len(h.offer) > 0:
		h.drawUpgradeMenu(screen)
	case h.shopOpen:
		h.drawShop(screen)
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)
	s := h.stats
	info := fmt.Sprintf("WAVE %d | SCORE %d | KILLS %d | LV %d | XP %d", s.Wave, s.Score, s.Kills, s.Level, s.SessionXP)
	if s.Combo > 1 {
		info += fmt.Sprintf(" | COMBO x%d", s.Combo)
	}
	info += fmt.Sprintf(" | FUNDS %d [TAB]", s.Funds)
	ebitenutil.DebugPrintAt(screen, info, 10, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f", ebiten.ActualFPS()), h.ScreenW-70, 8)
}

func (h *HUD) drawVitals(screen *ebiten.Image) {
	s := h.stats
	const panelW, panelH = 240, 96
	px, py := 10, h.ScreenH-panelH-10
	drawPanel(screen, px, py, panelW, panelH, color.RGBA{0, 0, 0, 160}, color.RGBA{40, 70, 120, 200})

	x, y, w := px+10, py+8, panelW-20
	hpColor := menuGreen
	ratio := ratioOf(float64(s.Health), float64(s.MaxHealth))
	if ratio < 0.5 {
		hpColor = menuGold
	}
	if ratio < 0.25 {
		hpColor = menuRed
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %d/%d", s.Health, s.MaxHealth), x, y)
	drawBar(screen, x+90, y+4, w-90, 6, ratio, hpColor)
	y += 18

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("XP %d/%d", s.XP, s.XPToLevel), x, y)
	drawBar(screen, x+90, y+4, w-90, 6, ratioOf(float64(s.XP), float64(s.XPToLevel)), colornames.Mediumpurple)
	y += 18

	ammo := fmt.Sprintf("%s %d/%d", s.WeaponName, s.Ammo, s.MaxAmmo)
	if s.Reloading {
		ammo = s.WeaponName + " RELOADING..."
	}
	ebitenutil.DebugPrintAt(screen, ammo, x, y)
	y += 18

	shield := "SHIELD READY [Q]"
	switch {
	case s.ShieldActive:
		shield = fmt.Sprintf("SHIELD %.0f", s.ShieldHealth)
	case s.ShieldCooldown > 0:
		shield = fmt.Sprintf("SHIELD %.0fs", s.ShieldCooldown/core.DefaultTickRate)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("GRENADES %d/%d [G]  %s", s.Grenades, s.MaxGrenades, shield), x, y)
	if s.ShieldActive {
		drawBar(screen, x, y+16, w, 3, ratioOf(s.ShieldHealth, s.ShieldMaxHealth), color.RGBA{0, 170, 255, 255})
	}
}

func ratioOf(v, maxV float64) float64 {
	if maxV <= 0 {
		return 0
	}
	return v / maxV
}

func (h *HUD) drawNotices(screen *ebiten.Image) {
	y := h.TopBarHeight + 20
	for _, n := range h.notices {
		a := min(1, float64(n.ttl)/30)
		bw := len(n.text)*6 + 24
		bx := h.ScreenW/2 - bw/2
		vector.DrawFilledRect(screen, float32(bx), float32(y), float32(bw), 20, color.RGBA{0, 0, 0, uint8(160 * a)}, false)
		vector.DrawFilledRect(screen, float32(bx), float32(y+18), float32(bw), 2, n.color, false)
		printCentered(screen, n.text, h.ScreenW/2, y+4)
		y += 26
	}
}

// upgradeCards lays out one card per offered option
func (h *HUD) upgradeCards() []MenuButton {
	const cw, ch, gap = 200, 110, 20
	n := len(h.offer)
	total := n*cw + (n-1)*gap
	x0 := h.ScreenW/2 - total/2
	y := h.ScreenH/2 - ch/2
	cards := make([]MenuButton, n)
	for i, o := range h.offer {
		cards[i] = MenuButton{X: x0 + i*(cw+gap), Y: y, W: cw, H: ch, Text: o.Name}
	}
	return cards
}

func (h *HUD) drawUpgradeMenu(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), color.RGBA{0, 0, 0, 170}, false)
	printBold(screen, "CHOOSE AN UPGRADE", h.ScreenW/2, h.ScreenH/2-110)

	mx, my := ebiten.CursorPosition()
	for i, c := range h.upgradeCards() {
		hovered := c.Contains(mx, my)
		border := menuBorder
		if hovered {
			border = menuGold
		}
		drawPanel(screen, c.X, c.Y, c.W, c.H, menuPanel, border)
		printCentered(screen, fmt.Sprintf("[%d]", i+1), c.X+c.W/2, c.Y+10)
		printCentered(screen, c.Text, c.X+c.W/2, c.Y+36)
		printCentered(screen, h.offer[i].Description, c.X+c.W/2, c.Y+64)
	}
}

// HandleClick returns the 1-based index of the upgrade card under the
// cursor, or 0 when the click was not on a card.
func (h *HUD) HandleClick(mx, my int) int {
	if len(h.offer) == 0 {
		return 0
	}
	return hitButton(h.upgradeCards(), mx, my) + 1
}
