// Package avatar is the player controller: movement, dash, firing, reload,
// shield and grenade state machines. Sub-states are orthogonal flags and
// timers rather than one master state machine.
package avatar

import (
	"math"
	"math/rand"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/entity"
	"github.com/1siamBot/code-crash/engine/upgrade"
	"github.com/1siamBot/code-crash/engine/weapon"
)

// Tuning, in pixels and ticks
const (
	Radius          = 18.0
	BaseSpeed       = 5.0
	DashSpeed       = 15.0
	DashDuration    = 8.0
	DashMaxCooldown = 90.0
	DashInvuln      = 10.0
	HitInvuln       = 30.0
	ShieldCooldown  = 600.0
	GrenadeCooldown = 60.0
	GrenadeDamage   = 50.0
	GrenadeBlast    = 100.0
	GrenadeFuse     = 90.0
	MuzzleOffset    = 25.0
	DualOffset      = 10.0
	FirstLevelXP    = 100
)

// Context carries the capabilities an update needs from the world
type Context struct {
	Mods   *upgrade.Modifiers
	Bounds core.Rect
	Rng    *rand.Rand
	FX     *entity.Effects
}

// Avatar is the player-controlled entity
type Avatar struct {
	Pos    core.Vec2
	Radius float64
	Aim    core.Vec2

	Health    float64
	MaxHealth float64

	Weapon       weapon.Weapon
	Ammo         int
	MaxAmmo      int
	Reloading    bool
	ReloadTime   float64
	FireCooldown float64

	XP        int
	XPToLevel int
	Level     int

	DashCooldown float64
	DashTimer    float64
	DashDir      core.Vec2
	dashLength   float64

	Invulnerable float64

	ShieldActive    bool
	ShieldHealth    float64
	ShieldMaxHealth float64
	ShieldCooldown  float64

	Grenades        int
	MaxGrenades     int
	GrenadeCooldown float64
}

// New places a fresh avatar at pos with the given weapon and loadout
func New(pos core.Vec2, w weapon.Weapon, lo upgrade.Loadout) *Avatar {
	a := &Avatar{
		Pos:             pos,
		Radius:          Radius,
		Aim:             pos,
		Health:          lo.MaxHealth,
		MaxHealth:       lo.MaxHealth,
		XPToLevel:       FirstLevelXP,
		Level:           1,
		ShieldMaxHealth: lo.ShieldMaxHealth,
		Grenades:        lo.Grenades,
		MaxGrenades:     lo.MaxGrenades,
	}
	a.Equip(w)
	return a
}

// Equip switches weapon, filling the new magazine and cancelling any reload
func (a *Avatar) Equip(w weapon.Weapon) {
	a.Weapon = w
	a.MaxAmmo = w.MaxAmmo
	a.Ammo = w.MaxAmmo
	a.Reloading = false
	a.ReloadTime = 0
	a.FireCooldown = 0
}

// Dashing reports whether a dash is in progress
func (a *Avatar) Dashing() bool { return a.DashTimer > 0 }

// Update advances the avatar one tick using the current input
func (a *Avatar) Update(ctx Context, in core.Input) {
	a.Aim = in.Aim

	if a.DashTimer > 0 {
		a.Pos = a.Pos.Add(a.DashDir.Scale(DashSpeed))
		core.Countdown(&a.DashTimer)
		if a.DashTimer == 0 {
			a.DashCooldown = DashMaxCooldown * ctx.Mods.DashCooldown
		}
	} else {
		move := in.Move()
		a.Pos = a.Pos.Add(move.Scale(BaseSpeed * ctx.Mods.MoveSpeed))

		if in.Dash && a.DashCooldown <= 0 && !move.IsZero() {
			a.DashDir = move
			a.dashLength = DashDuration + ctx.Mods.DashTicks
			a.DashTimer = a.dashLength
			a.Invulnerable = math.Max(a.Invulnerable, DashInvuln)
		}
	}

	a.Pos = ctx.Bounds.Clamp(a.Pos, a.Radius)

	core.Countdown(&a.FireCooldown)
	core.Countdown(&a.DashCooldown)
	core.Countdown(&a.Invulnerable)
	core.Countdown(&a.GrenadeCooldown)
	core.Countdown(&a.ShieldCooldown)

	if in.Fire && a.FireCooldown <= 0 && a.Ammo > 0 && !a.Reloading {
		a.shoot(ctx)
		a.FireCooldown = a.Weapon.FireRate / ctx.Mods.FireRate
		a.Ammo--
		if a.Ammo == 0 {
			a.Reload()
		}
	}

	if a.Reloading {
		a.ReloadTime++
		if a.ReloadTime >= a.ReloadDuration(ctx.Mods) {
			a.Ammo = a.MaxAmmo
			a.Reloading = false
			a.ReloadTime = 0
		}
	}

	if a.ShieldActive && a.ShieldHealth <= 0 {
		a.ShieldActive = false
	}
}

// ReloadDuration is the weapon reload time scaled by the reload modifier
func (a *Avatar) ReloadDuration(m *upgrade.Modifiers) float64 {
	return a.Weapon.ReloadTime / m.ReloadSpeed
}

// Reload starts a reload unless the magazine is full or one is running
func (a *Avatar) Reload() bool {
	if a.Ammo >= a.MaxAmmo || a.Reloading {
		return false
	}
	a.Reloading = true
	a.ReloadTime = 0
	return true
}

func (a *Avatar) shoot(ctx Context) {
	w := a.Weapon
	m := ctx.Mods
	base := a.Pos.AngleTo(a.Aim)
	speed := w.BulletSpeed * m.BulletSpeed
	damage := w.Damage * m.Damage
	pierce := w.Pierce + m.Pierce
	splash := w.Splash * m.BlastRadius
	rng := ctx.Rng

	fire := func(origin core.Vec2, angle float64) {
		ctx.FX.Fire(entity.NewProjectile(origin, core.FromAngle(angle, speed), damage, pierce, splash, w.Color))
	}

	switch w.Pattern {
	case weapon.PatternDual:
		for _, side := range [2]float64{math.Pi / 2, -math.Pi / 2} {
			offset := core.FromAngle(base+side, DualOffset)
			spread := (rng.Float64() - 0.5) * w.Spread
			fire(a.Pos.Add(offset).Add(core.FromAngle(base, MuzzleOffset)), base+spread)
		}
	case weapon.PatternSpread:
		n := max(w.Pellets, 1)
		start, step := 0.0, 0.0
		if n > 1 {
			start = -w.Spread / 2
			step = w.Spread / float64(n-1)
		}
		for i := 0; i < n; i++ {
			angle := base + start + step*float64(i) + (rng.Float64()-0.5)*0.1
			fire(a.Pos.Add(core.FromAngle(angle, MuzzleOffset)), angle)
		}
	case weapon.PatternRing:
		n := max(w.Pellets, 1)
		for i := 0; i < n; i++ {
			angle := float64(i) / float64(n) * math.Pi * 2
			fire(a.Pos.Add(core.FromAngle(angle, MuzzleOffset)), angle)
		}
	default:
		spread := (rng.Float64() - 0.5) * w.Spread
		fire(a.Pos.Add(core.FromAngle(base, MuzzleOffset)), base+spread)
	}

	muzzle := a.Pos.Add(core.FromAngle(base, MuzzleOffset))
	for i := 0; i < 5; i++ {
		angle := base + (rng.Float64()-0.5)*0.5
		ctx.FX.Emit(entity.NewParticle(rng, muzzle, core.FromAngle(angle, 3+rng.Float64()*3), w.Color, 3))
	}
}

// ThrowGrenade lobs a grenade at target if one is available and off cooldown
func (a *Avatar) ThrowGrenade(target core.Vec2, m *upgrade.Modifiers, fx *entity.Effects) bool {
	if a.Grenades <= 0 || a.GrenadeCooldown > 0 {
		return false
	}
	fx.Throw(entity.NewGrenade(a.Pos, target, GrenadeDamage*m.Damage, GrenadeBlast*m.BlastRadius, GrenadeFuse))
	a.Grenades--
	a.GrenadeCooldown = GrenadeCooldown
	return true
}

// ActivateShield raises the shield to full strength and starts its long
// cooldown. It fails while the shield is up or cooling down.
func (a *Avatar) ActivateShield() bool {
	if a.ShieldActive || a.ShieldCooldown > 0 {
		return false
	}
	a.ShieldActive = true
	a.ShieldHealth = a.ShieldMaxHealth
	a.ShieldCooldown = ShieldCooldown
	return true
}

// Hit is the outcome of one damage event
type Hit struct {
	Absorbed float64 // taken by the shield
	Taken    float64 // taken by health
}

// TakeDamage applies amount, shield first. Nothing happens while
// invulnerable; otherwise every accepted hit opens a new invulnerability
// window. The second result is false when the hit was ignored.
func (a *Avatar) TakeDamage(amount float64) (Hit, bool) {
	if a.Invulnerable > 0 || amount <= 0 {
		return Hit{}, false
	}
	var h Hit
	if a.ShieldActive && a.ShieldHealth > 0 {
		h.Absorbed = math.Min(a.ShieldHealth, amount)
		a.ShieldHealth -= h.Absorbed
		amount -= h.Absorbed
		if a.ShieldHealth <= 0 {
			a.ShieldHealth = 0
			a.ShieldActive = false
		}
	}
	if amount > 0 {
		h.Taken = math.Min(amount, a.Health)
		a.Health -= h.Taken
	}
	a.Invulnerable = HitInvuln
	return h, true
}

// Dead reports whether health is exhausted
func (a *Avatar) Dead() bool { return a.Health <= 0 }

// GainXP adds experience and returns how many levels were gained
func (a *Avatar) GainXP(amount int) int {
	a.XP += amount
	levels := 0
	for a.XPToLevel > 0 && a.XP >= a.XPToLevel {
		a.XP -= a.XPToLevel
		a.Level++
		a.XPToLevel = int(math.Floor(float64(a.XPToLevel) * 1.5))
		levels++
	}
	return levels
}

// RaiseMaxHealth increases the cap and heals by the same amount
func (a *Avatar) RaiseMaxHealth(amount float64) {
	a.MaxHealth += amount
	a.Heal(amount)
}

// Heal restores health up to the cap
func (a *Avatar) Heal(amount float64) {
	a.Health = math.Min(a.Health+amount, a.MaxHealth)
}

// RefillAmmo fills the magazine and interrupts any reload in progress
func (a *Avatar) RefillAmmo() {
	a.Ammo = a.MaxAmmo
	a.Reloading = false
	a.ReloadTime = 0
}

// AddGrenades adds up to the carry cap
func (a *Avatar) AddGrenades(n int) {
	a.Grenades = min(a.Grenades+n, a.MaxGrenades)
}

// DashProgress is 0 right after a dash and 1 when dash is ready again
func (a *Avatar) DashProgress(m *upgrade.Modifiers) float64 {
	full := DashMaxCooldown * m.DashCooldown
	if a.DashCooldown <= 0 || full <= 0 {
		return 1
	}
	return 1 - a.DashCooldown/full
}

// KeepInside clamps the avatar into new bounds after a resize
func (a *Avatar) KeepInside(b core.Rect) {
	a.Pos = b.Clamp(a.Pos, a.Radius)
}
