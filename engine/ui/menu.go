package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/upgrade"
	"github.com/1siamBot/code-crash/engine/weapon"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GameState represents the current UI state
type GameState int

const (
	StateMainMenu GameState = iota
	StateArmory
	StateUpgrades
	StatePlaying
	StateGameOver
)

// MenuSystem manages the screens around a run: main menu, the weapon
// armory, the permanent upgrade shop and the game over summary. It
// implements core.EventSink to pick up the end of a run.
type MenuSystem struct {
	core.NopSink

	State   GameState
	ScreenW int
	ScreenH int
	Tick    float64

	Profile core.Profile
	Summary core.RunSummary
	Delta   core.ProfileDelta
	status  string
	statusC color.RGBA

	hoverIdx int

	// Callbacks
	OnStartGame    func(tutorial bool)
	OnUnlockWeapon func(id string) (core.Profile, error)
	OnEquipWeapon  func(id string) (core.Profile, error)
	OnBuyUpgrade   func(id string) (core.Profile, error)
	OnExitGame     func()
}

func NewMenuSystem(screenW, screenH int, profile core.Profile) *MenuSystem {
	return &MenuSystem{
		State:    StateMainMenu,
		ScreenW:  screenW,
		ScreenH:  screenH,
		Profile:  profile,
		hoverIdx: -1,
	}
}

func (m *MenuSystem) OnGameOver(summary core.RunSummary) {
	m.Summary = summary
	m.State = StateGameOver
}

func (m *MenuSystem) OnRunEnd(delta core.ProfileDelta) {
	m.Delta = delta
	if m.State == StatePlaying {
		// stopped without dying
		m.State = StateMainMenu
	}
}

func (m *MenuSystem) Update(dt float64) {
	m.Tick += dt
	mx, my := ebiten.CursorPosition()

	switch m.State {
	case StateMainMenu:
		m.updateMainMenu(mx, my)
	case StateArmory:
		m.updateArmory(mx, my)
	case StateUpgrades:
		m.updateUpgrades(mx, my)
	case StateGameOver:
		m.updateGameOver(mx, my)
	}
}

func (m *MenuSystem) Draw(screen *ebiten.Image) {
	switch m.State {
	case StateMainMenu:
		m.drawMainMenu(screen)
	case StateArmory:
		m.drawArmory(screen)
	case StateUpgrades:
		m.drawUpgrades(screen)
	case StateGameOver:
		m.drawGameOver(screen)
	}
}

func (m *MenuSystem) setStatus(err error) {
	if err != nil {
		m.status, m.statusC = err.Error(), menuRed
		return
	}
	m.status = ""
}

func (m *MenuSystem) clicked(buttons []MenuButton, mx, my int) int {
	m.hoverIdx = hitButton(buttons, mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return m.hoverIdx
	}
	return -1
}

// ==================== MAIN MENU ====================

func (m *MenuSystem) mainMenuButtons() []MenuButton {
	cx := m.ScreenW / 2
	startY := m.ScreenH/2 - 20
	bw, bh, gap := 260, 40, 8
	names := []string{"PLAY", "TUTORIAL", "ARMORY", "UPGRADES", "EXIT"}
	buttons := make([]MenuButton, len(names))
	for i, name := range names {
		buttons[i] = MenuButton{X: cx - bw/2, Y: startY + i*(bh+gap), W: bw, H: bh, Text: name}
	}
	return buttons
}

func (m *MenuSystem) updateMainMenu(mx, my int) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.start(!m.Profile.TutorialComplete)
		return
	}
	switch m.clicked(m.mainMenuButtons(), mx, my) {
	case 0:
		m.start(false)
	case 1:
		m.start(true)
	case 2:
		m.State = StateArmory
	case 3:
		m.State = StateUpgrades
	case 4:
		if m.OnExitGame != nil {
			m.OnExitGame()
		}
	}
}

func (m *MenuSystem) start(tutorial bool) {
	m.setStatus(nil)
	m.State = StatePlaying
	if m.OnStartGame != nil {
		m.OnStartGame(tutorial)
	}
}

func (m *MenuSystem) drawMainMenu(screen *ebiten.Image) {
	screen.Fill(menuBG)
	m.drawAnimatedBG(screen)
	m.drawTitle(screen)
	for i, b := range m.mainMenuButtons() {
		drawButton(screen, b, i == m.hoverIdx)
	}
	p := m.Profile
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("CURRENCY %d | BEST WAVE %d | BEST SCORE %d | GAMES %d",
		p.Currency, p.BestWave, p.BestScore, p.GamesPlayed), 10, m.ScreenH-20)
}

func (m *MenuSystem) drawTitle(screen *ebiten.Image) {
	cx := m.ScreenW / 2
	ty := 75
	pulse := 0.7 + 0.3*math.Sin(m.Tick*2)
	vector.DrawFilledRect(screen, float32(cx-140), 60, 280, 70, color.RGBA{0, 100, 180, uint8(40 * pulse)}, false)
	printBold(screen, "CODE CRASH", cx, ty)
	lineY := float32(ty + 20)
	vector.DrawFilledRect(screen, float32(cx-120), lineY, 240, 2, menuAccent, false)
	vector.DrawFilledRect(screen, float32(cx-120), lineY-1, 240, 4, color.RGBA{0, 180, 255, 40}, false)
	printCentered(screen, "DEBUG THE SWARM", cx, ty+30)
}

func (m *MenuSystem) drawAnimatedBG(screen *ebiten.Image) {
	t := m.Tick
	gridAlpha := uint8(15)
	for i := 0; i < 20; i++ {
		x := float32(math.Mod(float64(i)*70+t*20, float64(m.ScreenW)))
		vector.StrokeLine(screen, x, 0, x, float32(m.ScreenH), 1, color.RGBA{0, 80, 120, gridAlpha}, false)
	}
	for i := 0; i < 12; i++ {
		y := float32(math.Mod(float64(i)*65+t*15, float64(m.ScreenH)))
		vector.StrokeLine(screen, 0, y, float32(m.ScreenW), y, 1, color.RGBA{0, 80, 120, gridAlpha}, false)
	}
	for i := 0; i < 30; i++ {
		px := float32(math.Mod(float64(i)*43.7+t*10+float64(i*i)*0.3, float64(m.ScreenW)))
		py := float32(math.Mod(float64(i)*67.3+t*5+float64(i)*1.7, float64(m.ScreenH)))
		alpha := uint8(20 + 20*math.Sin(t*2+float64(i)))
		vector.DrawFilledCircle(screen, px, py, 1.5, color.RGBA{0, 180, 255, alpha}, false)
	}
}

// ==================== ARMORY ====================

func (m *MenuSystem) listRows(n int) []MenuButton {
	const rowH, gap = 28, 4
	w := min(640, m.ScreenW-40)
	x := m.ScreenW/2 - w/2
	rows := make([]MenuButton, n+1)
	for i := 0; i < n; i++ {
		rows[i] = MenuButton{X: x, Y: 90 + i*(rowH+gap), W: w, H: rowH}
	}
	// back
	rows[n] = MenuButton{X: m.ScreenW/2 - 100, Y: m.ScreenH - 60, W: 200, H: 36, Text: "BACK"}
	return rows
}

func (m *MenuSystem) updateArmory(mx, my int) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.State = StateMainMenu
		return
	}
	weapons := weapon.All()
	i := m.clicked(m.armoryRows(weapons), mx, my)
	switch {
	case i < 0:
	case i == len(weapons):
		m.State = StateMainMenu
	default:
		w := weapons[i]
		var (
			p   core.Profile
			err error
		)
		if m.Profile.Owns(w.ID) {
			if m.OnEquipWeapon == nil {
				return
			}
			p, err = m.OnEquipWeapon(w.ID)
		} else {
			if m.OnUnlockWeapon == nil {
				return
			}
			p, err = m.OnUnlockWeapon(w.ID)
		}
		m.setStatus(err)
		if err == nil {
			m.Profile = p
		}
	}
}

func (m *MenuSystem) drawArmory(screen *ebiten.Image) {
	screen.Fill(menuBG)
	printBold(screen, "ARMORY", m.ScreenW/2, 40)
	printCentered(screen, fmt.Sprintf("CURRENCY %d", m.Profile.Currency), m.ScreenW/2, 60)

	weapons := weapon.All()
	rows := m.armoryRows(weapons)
	p := m.Profile
	for i, w := range weapons {
		r := rows[i]
		drawPanel(screen, r.X, r.Y, r.W, r.H, rowFill(r), menuBorderFor(i == m.hoverIdx))
		vector.DrawFilledRect(screen, float32(r.X+6), float32(r.Y+8), 12, 12, w.Color, false)
		if p.Equipped == w.ID {
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y+r.H-2), float32(r.W), 2, menuGreen, false)
		}
		var state string
		switch {
		case p.Equipped == w.ID:
			state = "EQUIPPED"
		case p.Owns(w.ID):
			state = "OWNED - CLICK TO EQUIP"
		case p.BestWave >= w.UnlockWave && p.BestLevel >= w.UnlockLevel:
			state = fmt.Sprintf("UNLOCK %d", w.Cost)
		default:
			state = fmt.Sprintf("EARLY UNLOCK %d (WAVE %d, LV %d)", w.EarlyUnlockCost(), w.UnlockWave, w.UnlockLevel)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("T%d %-14s %s", w.Tier, w.Name, state), r.X+26, r.Y+8)
	}
	back := rows[len(weapons)]
	drawButton(screen, back, m.hoverIdx == len(weapons))
	m.drawStatus(screen)
}

// armoryRows disables the equipped weapon and locked weapons the profile
// cannot pay for
func (m *MenuSystem) armoryRows(weapons []weapon.Weapon) []MenuButton {
	rows := m.listRows(len(weapons))
	p := m.Profile
	for i, w := range weapons {
		switch {
		case p.Equipped == w.ID:
			rows[i].Disabled = true
		case p.Owns(w.ID):
		case p.BestWave >= w.UnlockWave && p.BestLevel >= w.UnlockLevel:
			rows[i].Disabled = p.Currency < w.Cost
		default:
			rows[i].Disabled = p.Currency < w.EarlyUnlockCost()
		}
	}
	return rows
}

// upgradeRows disables maxed upgrades and those the profile cannot pay for
func (m *MenuSystem) upgradeRows(perms []upgrade.Permanent) []MenuButton {
	rows := m.listRows(len(perms))
	for i, pu := range perms {
		level := m.Profile.Level(pu.ID)
		rows[i].Disabled = level >= pu.Max || m.Profile.Currency < pu.Cost(level)
	}
	return rows
}

func rowFill(r MenuButton) color.RGBA {
	if r.Disabled {
		return menuBtnDis
	}
	return menuPanel
}

func menuBorderFor(hovered bool) color.RGBA {
	if hovered {
		return menuAccent
	}
	return color.RGBA{40, 70, 120, 200}
}

func (m *MenuSystem) drawStatus(screen *ebiten.Image) {
	if m.status == "" {
		return
	}
	vector.DrawFilledRect(screen, 0, float32(m.ScreenH-96), float32(m.ScreenW), 2, m.statusC, false)
	printCentered(screen, m.status, m.ScreenW/2, m.ScreenH-90)
}

// ==================== UPGRADES ====================

func (m *MenuSystem) updateUpgrades(mx, my int) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.State = StateMainMenu
		return
	}
	perms := upgrade.Permanents()
	i := m.clicked(m.upgradeRows(perms), mx, my)
	switch {
	case i < 0:
	case i == len(perms):
		m.State = StateMainMenu
	case m.OnBuyUpgrade != nil:
		p, err := m.OnBuyUpgrade(perms[i].ID)
		m.setStatus(err)
		if err == nil {
			m.Profile = p
		}
	}
}

func (m *MenuSystem) drawUpgrades(screen *ebiten.Image) {
	screen.Fill(menuBG)
	printBold(screen, "UPGRADES", m.ScreenW/2, 40)
	printCentered(screen, fmt.Sprintf("CURRENCY %d", m.Profile.Currency), m.ScreenW/2, 60)

	perms := upgrade.Permanents()
	rows := m.upgradeRows(perms)
	for i, pu := range perms {
		r := rows[i]
		level := m.Profile.Level(pu.ID)
		drawPanel(screen, r.X, r.Y, r.W, r.H, rowFill(r), menuBorderFor(i == m.hoverIdx))
		cost := "MAX"
		if level < pu.Max {
			cost = fmt.Sprintf("%d", pu.Cost(level))
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-16s %-36s %5s", pu.Name, pu.Description, cost), r.X+8, r.Y+8)
		barColor := menuGold
		if level >= pu.Max {
			barColor = menuGreen
		}
		drawBar(screen, r.X+r.W-90, r.Y+12, 80, 4, float64(level)/float64(pu.Max), barColor)
	}
	drawButton(screen, rows[len(perms)], m.hoverIdx == len(perms))
	m.drawStatus(screen)
}

// ==================== GAME OVER ====================

func (m *MenuSystem) gameOverButtons() []MenuButton {
	cx := m.ScreenW / 2
	btnW, btnH := 200, 40
	btnY := m.ScreenH/2 + 120
	return []MenuButton{
		{X: cx - btnW - 10, Y: btnY, W: btnW, H: btnH, Text: "PLAY AGAIN"},
		{X: cx + 10, Y: btnY, W: btnW, H: btnH, Text: "MAIN MENU"},
	}
}

func (m *MenuSystem) updateGameOver(mx, my int) {
	switch m.clicked(m.gameOverButtons(), mx, my) {
	case 0:
		m.start(false)
	case 1:
		m.State = StateMainMenu
	}
}

func (m *MenuSystem) drawGameOver(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(m.ScreenW), float32(m.ScreenH), color.RGBA{0, 0, 0, 180}, false)

	cx := m.ScreenW / 2
	cy := m.ScreenH / 2
	panelW, panelH := 400, 340
	px, py := cx-panelW/2, cy-panelH/2
	drawPanel(screen, px, py, panelW, panelH, menuPanel, menuBorder)

	ty := py + 30
	printBold(screen, "SYSTEM FAILURE", cx, ty)
	vector.DrawFilledRect(screen, float32(cx-60), float32(ty+18), 120, 3, menuRed, false)

	s := m.Summary
	lines := []string{
		fmt.Sprintf("Wave Reached:   %d", s.Wave),
		fmt.Sprintf("Level:          %d", s.Level),
		fmt.Sprintf("Score:          %d", s.Score),
		fmt.Sprintf("Kills:          %d", s.Kills),
		fmt.Sprintf("Highest Combo:  %d", s.HighestCombo),
		fmt.Sprintf("Time:           %ds", int(float64(s.Ticks)/core.DefaultTickRate)),
		fmt.Sprintf("Currency Earned: +%d", m.Delta.EarnedCurrency),
	}
	for i, line := range lines {
		printCentered(screen, line, cx, ty+40+i*22)
	}

	for i, b := range m.gameOverButtons() {
		drawButton(screen, b, i == m.hoverIdx)
	}
}
