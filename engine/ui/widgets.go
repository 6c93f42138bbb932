package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	menuBG      = color.RGBA{8, 8, 16, 255}
	menuPanel   = color.RGBA{15, 15, 30, 230}
	menuBorder  = color.RGBA{0, 140, 200, 255}
	menuAccent  = color.RGBA{0, 200, 255, 255}
	menuBtnNorm = color.RGBA{25, 35, 55, 240}
	menuBtnHov  = color.RGBA{35, 55, 90, 255}
	menuBtnDis  = color.RGBA{20, 20, 30, 200}
	menuGold    = color.RGBA{255, 200, 50, 255}
	menuRed     = color.RGBA{220, 50, 50, 255}
	menuGreen   = color.RGBA{50, 220, 80, 255}
	barBG       = color.RGBA{40, 40, 40, 200}
)

// MenuButton represents a clickable button
type MenuButton struct {
	X, Y, W, H int
	Text       string
	Disabled   bool
}

// Contains reports whether the point is inside the button
func (b MenuButton) Contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// hitButton returns the index of the enabled button under the cursor, or -1
func hitButton(buttons []MenuButton, mx, my int) int {
	for i, b := range buttons {
		if !b.Disabled && b.Contains(mx, my) {
			return i
		}
	}
	return -1
}

func drawPanel(screen *ebiten.Image, x, y, w, h int, fill, border color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1.5, border, false)
}

func drawButton(screen *ebiten.Image, b MenuButton, hovered bool) {
	clr := menuBtnNorm
	if b.Disabled {
		clr = menuBtnDis
	} else if hovered {
		clr = menuBtnHov
	}
	border := color.RGBA{40, 70, 120, 200}
	if hovered && !b.Disabled {
		border = menuAccent
	}
	drawPanel(screen, b.X, b.Y, b.W, b.H, clr, border)
	printCentered(screen, b.Text, b.X+b.W/2, b.Y+b.H/2-6)
}

// drawBar draws a horizontal fill bar; ratio is clamped to [0,1]
func drawBar(screen *ebiten.Image, x, y, w, h int, ratio float64, fill color.RGBA) {
	ratio = max(0, min(1, ratio))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), barBG, false)
	if ratio > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(float64(w)*ratio), float32(h), fill, false)
	}
}

// printCentered prints debug text centered on cx
func printCentered(screen *ebiten.Image, s string, cx, y int) {
	ebitenutil.DebugPrintAt(screen, s, cx-len(s)*3, y)
}

// printBold prints text with a one pixel smear, the debug font's only weight
func printBold(screen *ebiten.Image, s string, cx, y int) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			printCentered(screen, s, cx+dx, y+dy)
		}
	}
}
