package upgrade

// Permanent upgrade identifiers as stored in the profile
const (
	PermMaxHealth       = "maxHealth"
	PermDamage          = "damage"
	PermMoveSpeed       = "moveSpeed"
	PermReloadSpeed     = "reloadSpeed"
	PermGrenadeCapacity = "grenadeCapacity"
	PermShieldStrength  = "shieldStrength"
	PermCritChance      = "critChance"
	PermXPBonus         = "xpBonus"
	PermArmor           = "armor"
	PermLifesteal       = "lifesteal"
	PermExplosionRadius = "explosionRadius"
	PermBulletPierce    = "bulletPierce"
	PermDashDistance    = "dashDistance"
	PermLuckyDrops      = "luckyDrops"
)

// Permanent is a leveled cross-run upgrade bought with currency
type Permanent struct {
	ID          string
	Name        string
	Description string
	CostBase    int
	Max         int
}

// Cost returns the price of buying the next level when at level
func (p Permanent) Cost(level int) int {
	return p.CostBase + level*50
}

var permanents = []Permanent{
	{PermMaxHealth, "MAX HEALTH", "+10 max health per level", 100, 10},
	{PermDamage, "DAMAGE", "+10% damage per level", 150, 10},
	{PermMoveSpeed, "MOVE SPEED", "+5% speed per level", 120, 5},
	{PermReloadSpeed, "RELOAD SPEED", "+10% reload speed per level", 100, 5},
	{PermGrenadeCapacity, "GRENADE CAPACITY", "+1 max grenades", 200, 5},
	{PermShieldStrength, "SHIELD STRENGTH", "+20 shield HP per level", 180, 5},
	{PermCritChance, "CRITICAL HIT", "+5% crit chance per level", 250, 5},
	{PermXPBonus, "XP BONUS", "+10% XP gain per level", 200, 5},
	{PermArmor, "ARMOR", "-5% contact damage per level", 200, 10},
	{PermLifesteal, "LIFESTEAL", "+1 HP per kill per level", 250, 5},
	{PermExplosionRadius, "BLAST RADIUS", "+10% explosion radius per level", 150, 5},
	{PermBulletPierce, "PIERCE", "Bullets pierce +1 enemy per level", 300, 3},
	{PermDashDistance, "DASH DISTANCE", "+1 dash frame per level", 120, 5},
	{PermLuckyDrops, "LUCKY DROPS", "+5% fragment drop chance per level", 200, 5},
}

var permanentByID = func() map[string]Permanent {
	m := make(map[string]Permanent, len(permanents))
	for _, p := range permanents {
		m[p.ID] = p
	}
	return m
}()

// Permanents returns the permanent upgrade table in display order
func Permanents() []Permanent {
	return append([]Permanent(nil), permanents...)
}

// LookupPermanent returns the permanent upgrade for id
func LookupPermanent(id string) (Permanent, bool) {
	p, ok := permanentByID[id]
	return p, ok
}
