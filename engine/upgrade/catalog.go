package upgrade

import (
	"math/rand"

	"github.com/1siamBot/code-crash/engine/core"
)

// In-run upgrade identifiers
const (
	FireRate     = "fireRate"
	MoveSpeed    = "moveSpeed"
	Damage       = "damage"
	MaxHealth    = "maxHealth"
	BulletSpeed  = "bulletSpeed"
	ReloadSpeed  = "reloadSpeed"
	Pierce       = "pierce"
	DashCooldown = "dashCooldown"
	Heal         = "heal"
	Shield       = "shield"
	Ammo         = "ammo"
	Grenade      = "grenade"
)

// OfferSize is how many options a collected fragment presents
const OfferSize = 3

var catalog = []core.UpgradeOption{
	{ID: FireRate, Name: "RAPID FIRE", Description: "+20% Fire Rate"},
	{ID: MoveSpeed, Name: "OVERCLOCK", Description: "+15% Move Speed"},
	{ID: Damage, Name: "BIT CRUSHER", Description: "+25% Damage"},
	{ID: MaxHealth, Name: "MEMORY UPGRADE", Description: "+20 Max Health"},
	{ID: BulletSpeed, Name: "FAST COMPILE", Description: "+30% Bullet Speed"},
	{ID: ReloadSpeed, Name: "QUICK SYNC", Description: "+25% Reload Speed"},
	{ID: Pierce, Name: "PENETRATION", Description: "Bullets pierce +1 enemy"},
	{ID: DashCooldown, Name: "TURBO BOOST", Description: "-20% Dash Cooldown"},
	{ID: Heal, Name: "PATCH FIX", Description: "Restore 30 HP"},
	{ID: Shield, Name: "FIREWALL", Description: "Activate shield now"},
	{ID: Ammo, Name: "AMMO CACHE", Description: "Refill all ammo"},
	{ID: Grenade, Name: "EXPLOSIVE CODE", Description: "+2 Grenades"},
}

// Catalog returns every in-run upgrade
func Catalog() []core.UpgradeOption {
	return append([]core.UpgradeOption(nil), catalog...)
}

// Known reports whether id names an in-run upgrade
func Known(id string) bool {
	for _, u := range catalog {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Offer samples n distinct upgrades without replacement
func Offer(rng *rand.Rand, n int) []core.UpgradeOption {
	n = min(n, len(catalog))
	pool := Catalog()
	// partial Fisher-Yates: the first n slots end up a uniform sample
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Target is the avatar-side surface that direct upgrades mutate
type Target interface {
	RaiseMaxHealth(amount float64)
	Heal(amount float64)
	RefillAmmo()
	AddGrenades(n int)
	ActivateShield() bool
}

// Apply mutates the modifier table or the target for id. Unknown ids are
// ignored and reported with false.
func Apply(id string, m *Modifiers, t Target) bool {
	switch id {
	case FireRate:
		m.FireRate *= 1.2
	case MoveSpeed:
		m.MoveSpeed *= 1.15
	case Damage:
		m.Damage *= 1.25
	case BulletSpeed:
		m.BulletSpeed *= 1.3
	case ReloadSpeed:
		m.ReloadSpeed *= 1.25
	case Pierce:
		m.Pierce++
	case DashCooldown:
		m.DashCooldown *= 0.8
	case MaxHealth:
		t.RaiseMaxHealth(20)
	case Heal:
		t.Heal(30)
	case Shield:
		t.ActivateShield()
	case Ammo:
		t.RefillAmmo()
	case Grenade:
		t.AddGrenades(2)
	default:
		return false
	}
	return true
}
