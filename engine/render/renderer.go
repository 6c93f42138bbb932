package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/1siamBot/code-crash/engine/avatar"
	"github.com/1siamBot/code-crash/engine/entity"
	"github.com/1siamBot/code-crash/engine/hostile"
	"github.com/1siamBot/code-crash/engine/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const gridSpacing = 40

var (
	background  = color.RGBA{10, 10, 18, 255}
	gridColor   = color.RGBA{0, 255, 136, 18}
	avatarColor = color.RGBA{0, 255, 136, 255}
	shieldColor = color.RGBA{0, 170, 255, 255}
	pickupColor = color.RGBA{255, 215, 0, 255}
	barBack     = color.RGBA{51, 51, 51, 255}
)

// Renderer draws a World onto the screen each frame
type Renderer struct {
	face *text.GoXFace
}

// NewRenderer creates a renderer using the built-in bitmap font
func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw renders the whole scene back to front
func (r *Renderer) Draw(screen *ebiten.Image, w *sim.World) {
	screen.Fill(background)
	r.DrawGrid(screen, w)

	w.EachPickup(func(p *entity.Pickup) { r.drawPickup(screen, p) })
	w.EachGrenade(func(g *entity.Grenade) { r.drawGrenade(screen, g) })
	w.EachProjectile(func(p *entity.Projectile) { r.drawProjectile(screen, p) })
	w.EachHostile(func(h *hostile.Hostile) { r.drawHostile(screen, h) })
	r.drawAvatar(screen, w.Avatar(), w)
	w.EachParticle(func(p *entity.Particle) {
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size), withAlpha(p.Color, p.Alpha()), true)
	})

	r.drawComboBanner(screen, w)
	r.drawCrosshair(screen, w.Avatar())

	if w.Paused() {
		b := w.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(b.W), float32(b.H), color.RGBA{0, 0, 0, 150}, false)
		r.centerText(screen, "PAUSED", b.W/2, b.H/2, colornames.White)
	}
}

// DrawGrid draws the scrolling background grid
func (r *Renderer) DrawGrid(screen *ebiten.Image, w *sim.World) {
	b := w.Bounds()
	off := float32(math.Mod(w.GridOffset(), gridSpacing))
	for x := off; x < float32(b.W); x += gridSpacing {
		vector.StrokeLine(screen, x, 0, x, float32(b.H), 1, gridColor, false)
	}
	for y := off; y < float32(b.H); y += gridSpacing {
		vector.StrokeLine(screen, 0, y, float32(b.W), y, 1, gridColor, false)
	}
}

func (r *Renderer) drawPickup(screen *ebiten.Image, p *entity.Pickup) {
	y := p.Pos.Y + math.Sin(p.Bob)*5
	alpha := 1.0
	if p.Life < 120 && int(p.Life/8)%2 == 0 {
		alpha = 0.4
	}
	vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(y), float32(p.Radius*1.6), withAlpha(pickupColor, 0.15*alpha), true)
	fillPath(screen, polygon(p.Pos.X, y, p.Radius, 0, 4, p.Rotation), withAlpha(pickupColor, alpha))
	r.centerText(screen, "</>", p.Pos.X, y, withAlpha(colornames.Black, alpha))
}

func (r *Renderer) drawGrenade(screen *ebiten.Image, g *entity.Grenade) {
	x, y := float32(g.Pos.X), float32(g.Pos.Y)
	vector.DrawFilledCircle(screen, x, y, float32(g.Radius), colornames.Darkolivegreen, true)
	// fuse indicator blinks faster as it burns down
	if g.MaxFuse > 0 {
		period := 4 + int(16*g.Fuse/g.MaxFuse)
		if int(g.Fuse)%period < period/2 {
			vector.DrawFilledCircle(screen, x, y-float32(g.Radius), 3, colornames.Red, true)
		}
	}
	vector.StrokeCircle(screen, x, y, float32(g.Blast), 1, withAlpha(colornames.Orangered, 0.15), true)
}

func (r *Renderer) drawProjectile(screen *ebiten.Image, p *entity.Projectile) {
	trail := p.Trail()
	for i := 1; i < len(trail); i++ {
		a := float64(i) / float64(len(trail))
		vector.StrokeLine(screen,
			float32(trail[i-1].X), float32(trail[i-1].Y), float32(trail[i].X), float32(trail[i].Y),
			float32(p.Radius*a), withAlpha(p.Color, a*0.6), true)
	}
	x, y := float32(p.Pos.X), float32(p.Pos.Y)
	vector.DrawFilledCircle(screen, x, y, float32(p.Radius*1.8), withAlpha(p.Color, 0.25), true)
	vector.DrawFilledCircle(screen, x, y, float32(p.Radius), p.Color, true)
}

func (r *Renderer) drawHostile(screen *ebiten.Image, h *hostile.Hostile) {
	x, y := h.Pos.X, h.Pos.Y
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(h.Radius*1.5), withAlpha(h.Color, 0.2), true)

	body := h.Color
	if h.HitFlash > 0 {
		body = colornames.White
	}
	var path *vector.Path
	switch h.Kind {
	case hostile.Basic:
		path = polygon(x, y, h.Radius, 0, 6, h.Wobble)
	case hostile.Fast:
		path = polygon(x, y, h.Radius, 0, 3, h.Angle)
	case hostile.Tank:
		path = polygon(x, y, h.Radius*math.Sqrt2, 0, 4, math.Pi/4)
	default:
		path = polygon(x, y, h.Radius, h.Radius*0.6, 10, h.Wobble*0.5)
	}
	fillPath(screen, path, body)

	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(h.Radius*0.4), color.RGBA{0, 0, 0, 77}, true)
	ex := x + math.Cos(h.Angle)*h.Radius*0.3
	ey := y + math.Sin(h.Angle)*h.Radius*0.3
	vector.DrawFilledCircle(screen, float32(ex), float32(ey), float32(h.Radius*0.2), colornames.White, true)

	if (h.Kind == hostile.Tank || h.Kind == hostile.Boss) && h.Health < h.MaxHealth {
		bw := float32(h.Radius * 2)
		bx := float32(x) - bw/2
		by := float32(y - h.Radius - 10)
		vector.DrawFilledRect(screen, bx, by, bw, 4, barBack, false)
		vector.DrawFilledRect(screen, bx, by, bw*float32(h.HealthFraction()), 4, h.Color, false)
	}
}

func (r *Renderer) drawAvatar(screen *ebiten.Image, a *avatar.Avatar, w *sim.World) {
	x, y := float32(a.Pos.X), float32(a.Pos.Y)
	mods := w.Mods()

	if a.Dashing() {
		// afterimage opposite the dash direction
		for i := 1; i <= 3; i++ {
			back := a.Pos.Sub(a.DashDir.Scale(float64(i) * avatar.DashSpeed * 0.5))
			vector.DrawFilledCircle(screen, float32(back.X), float32(back.Y), float32(a.Radius), withAlpha(avatarColor, 0.3/float64(i)), true)
		}
	}

	body := avatarColor
	if a.Invulnerable > 0 && int(a.Invulnerable/3)%2 == 0 {
		body = withAlpha(body, 0.5)
	}
	vector.DrawFilledCircle(screen, x, y, float32(a.Radius*1.6), withAlpha(avatarColor, 0.15), true)
	vector.DrawFilledCircle(screen, x, y, float32(a.Radius), body, true)

	dir, ok := a.Aim.Sub(a.Pos).Normalize()
	if ok {
		tip := a.Pos.Add(dir.Scale(avatar.MuzzleOffset))
		vector.StrokeLine(screen, x, y, float32(tip.X), float32(tip.Y), 6, a.Weapon.Color, true)
	}

	if a.ShieldActive && a.ShieldMaxHealth > 0 {
		frac := a.ShieldHealth / a.ShieldMaxHealth
		vector.StrokeCircle(screen, x, y, float32(a.Radius+10), 3, withAlpha(shieldColor, 0.4+0.6*frac), true)
	}

	// reload and dash readiness bars under the avatar
	if a.Reloading {
		r.progressBar(screen, a.Pos.X, a.Pos.Y+a.Radius+8, a.ReloadTime/a.ReloadDuration(&mods), colornames.Yellow)
	}
	if p := a.DashProgress(&mods); p < 1 {
		r.progressBar(screen, a.Pos.X, a.Pos.Y+a.Radius+14, p, colornames.Cyan)
	}
}

func (r *Renderer) progressBar(screen *ebiten.Image, cx, y, frac float64, c color.RGBA) {
	frac = math.Max(0, math.Min(1, frac))
	const width = 36
	x := float32(cx - width/2)
	vector.DrawFilledRect(screen, x, float32(y), width, 3, barBack, false)
	vector.DrawFilledRect(screen, x, float32(y), float32(width*frac), 3, c, false)
}

func (r *Renderer) drawComboBanner(screen *ebiten.Image, w *sim.World) {
	combo := w.Combo()
	if combo < 2 {
		return
	}
	c := sim.ComboColor(combo)
	fade := math.Min(1, w.ComboTimer()/30)
	msg := fmt.Sprintf("%dx COMBO", combo)
	if m := sim.ComboMessage(combo); m != "" {
		msg = fmt.Sprintf("%s %s", msg, m)
	}
	r.centerText(screen, msg, w.Bounds().W/2, 90, withAlpha(c, fade))
	bw := float32(160 * w.ComboTimer() / sim.ComboWindow)
	vector.DrawFilledRect(screen, float32(w.Bounds().W/2)-bw/2, 102, bw, 2, withAlpha(c, fade), false)
}

func (r *Renderer) drawCrosshair(screen *ebiten.Image, a *avatar.Avatar) {
	x, y := float32(a.Aim.X), float32(a.Aim.Y)
	c := colornames.White
	vector.StrokeCircle(screen, x, y, 10, 1.5, c, true)
	vector.StrokeLine(screen, x-16, y, x-6, y, 1.5, c, true)
	vector.StrokeLine(screen, x+6, y, x+16, y, 1.5, c, true)
	vector.StrokeLine(screen, x, y-16, x, y-6, 1.5, c, true)
	vector.StrokeLine(screen, x, y+6, x, y+16, 1.5, c, true)
}

func (r *Renderer) centerText(screen *ebiten.Image, s string, cx, cy float64, c color.Color) {
	tw, th := text.Measure(s, r.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-tw/2, cy-th/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, r.face, op)
}
