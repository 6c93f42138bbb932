package ui

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/code-crash/engine/upgrade"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// OpenShop shows the in-run shop; the host pauses the run while it is open
func (h *HUD) OpenShop() { h.shopOpen = true }

// CloseShop hides the shop
func (h *HUD) CloseShop() { h.shopOpen = false }

// ShopOpen reports whether the shop overlay is showing
func (h *HUD) ShopOpen() bool { return h.shopOpen }

// shopCards lays out the shop in two rows. Items not on sale this wave or
// beyond the current funds are disabled.
func (h *HUD) shopCards(items []upgrade.ShopItem) []MenuButton {
	const cw, ch, gap, perRow = 170, 70, 12, 4
	x0 := h.ScreenW/2 - (perRow*cw+(perRow-1)*gap)/2
	y0 := h.ScreenH/2 - ch - gap/2
	cards := make([]MenuButton, len(items))
	for i, it := range items {
		cards[i] = MenuButton{
			X: x0 + (i%perRow)*(cw+gap), Y: y0 + (i/perRow)*(ch+gap), W: cw, H: ch,
			Text:     it.Name,
			Disabled: !it.Affordable(h.stats.Wave, h.stats.Funds),
		}
	}
	return cards
}

func (h *HUD) drawShop(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), color.RGBA{0, 0, 0, 170}, false)
	printBold(screen, "SHOP", h.ScreenW/2, h.ScreenH/2-130)
	printCentered(screen, fmt.Sprintf("FUNDS %d  [TAB] CLOSE", h.stats.Funds), h.ScreenW/2, h.ScreenH/2-110)

	items := upgrade.ShopItems()
	mx, my := ebiten.CursorPosition()
	for i, c := range h.shopCards(items) {
		it := items[i]
		hovered := c.Contains(mx, my)
		drawButton(screen, c, hovered)
		cost, costColor := fmt.Sprintf("[%d] %d", i+1, it.Cost), menuGreen
		switch {
		case !it.Available(h.stats.Wave):
			cost, costColor = fmt.Sprintf("WAVE %d", it.MinWave), menuRed
		case c.Disabled:
			costColor = menuRed
		}
		vector.DrawFilledRect(screen, float32(c.X), float32(c.Y+c.H-3), float32(c.W), 3, costColor, false)
		printCentered(screen, cost, c.X+c.W/2, c.Y+8)
		printCentered(screen, it.Description, c.X+c.W/2, c.Y+c.H-20)
	}
}

// ShopPick returns the shop item chosen by a number key or a click on an
// enabled card, and false when nothing was picked.
func (h *HUD) ShopPick(choose int, clicked bool, mx, my int) (upgrade.ShopItem, bool) {
	items := upgrade.ShopItems()
	cards := h.shopCards(items)
	i := choose - 1
	if clicked {
		i = hitButton(cards, mx, my)
	}
	if i < 0 || i >= len(items) || cards[i].Disabled {
		return upgrade.ShopItem{}, false
	}
	return items[i], true
}
