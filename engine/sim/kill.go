package sim

import (
	"image/color"
	"math"

	"github.com/1siamBot/code-crash/engine/entity"
	"github.com/1siamBot/code-crash/engine/hostile"
	"golang.org/x/image/colornames"
)

const (
	// ScoreComboCap bounds the combo part of the score multiplier
	ScoreComboCap   = 3.0
	scoreComboStep  = 0.15
	xpComboStep     = 0.1
	deathParticles  = 20
	levelUpSparks   = 30
	comboMilestones = 5 // a milestone fires every this many kills, up to maxMilestone
	maxMilestone    = 25
)

// KillXP is the experience awarded for a kill at combo with the given XP bonus
func KillXP(base, combo int, xpBonus float64) int {
	return int(math.Floor(float64(base) * (1 + float64(combo)*xpComboStep) * xpBonus))
}

// KillScore is the score awarded for a kill at combo; the combo bonus is capped
func KillScore(base, combo int) int {
	return int(math.Floor(float64(base) * (1 + math.Min(ScoreComboCap, float64(combo)*scoreComboStep))))
}

// DropChance is the base pickup drop probability for a kill in wave
func DropChance(wave int, kind hostile.Kind) float64 {
	switch {
	case kind == hostile.Boss:
		return 1
	case wave <= 2:
		return 0.5
	case wave <= 5:
		return 0.4
	}
	return 0.3
}

// ComboMessage is the banner text for a combo count
func ComboMessage(combo int) string {
	switch {
	case combo >= 25:
		return "UNSTOPPABLE!"
	case combo >= 20:
		return "GODLIKE!"
	case combo >= 15:
		return "RAMPAGE!"
	case combo >= 10:
		return "DOMINATING!"
	case combo >= 7:
		return "KILLING SPREE!"
	case combo >= 5:
		return "MULTI KILL!"
	case combo >= 3:
		return "COMBO!"
	}
	return ""
}

// ComboColor is the banner colour band for a combo count
func ComboColor(combo int) color.RGBA {
	switch {
	case combo >= 20:
		return colornames.Magenta
	case combo >= 15:
		return colornames.Red
	case combo >= 10:
		return color.RGBA{0xff, 0x66, 0x00, 0xff}
	case combo >= 5:
		return colornames.Yellow
	}
	return colornames.Cyan
}

func isMilestone(combo int) bool {
	return combo > 0 && combo <= maxMilestone && combo%comboMilestones == 0
}

// creditKills runs the kill bookkeeping for every hostile that died since
// the last call.
func (w *World) creditKills() {
	for _, h := range w.deaths {
		w.creditKill(h)
	}
	w.deaths = w.deaths[:0]
}

func (w *World) creditKill(h hostile.Hostile) {
	w.combo++
	w.comboTimer = ComboWindow
	w.highestCombo = max(w.highestCombo, w.combo)

	xp := KillXP(h.XP, w.combo, w.mods.XPBonus)
	w.score += KillScore(h.Score, w.combo)
	w.sessionXP += xp
	w.kills++
	w.director.RecordKill()

	av := w.avatar
	levels := av.GainXP(xp)
	if w.mods.Lifesteal > 0 {
		av.Heal(w.mods.Lifesteal)
	}

	if isMilestone(w.combo) {
		w.sink.OnCombo(w.combo, ComboMessage(w.combo))
	}

	w.fx.Burst(w.rng, h.Pos, entity.Burst{Count: deathParticles, MinSpeed: 3, SpeedVar: 5, MinSize: 4, SizeVar: 4, Color: h.Color})

	if w.rng.Float64() < DropChance(w.director.Wave(), h.Kind)+w.mods.DropBonus {
		w.pickups.Insert(entity.NewPickup(h.Pos, w.rng.Float64()*math.Pi*2))
	}

	if levels > 0 {
		w.fx.Burst(w.rng, av.Pos, entity.Burst{Count: levelUpSparks, MinSpeed: 2, SpeedVar: 4, MinSize: 4, SizeVar: 2, Color: colornames.Yellow})
		w.sink.OnLevelUp(av.Level)
	}
}
