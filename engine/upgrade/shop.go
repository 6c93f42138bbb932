package upgrade

// In-run shop item identifiers
const (
	ShopHeal25    = "heal25"
	ShopHeal50    = "heal50"
	ShopHealFull  = "healFull"
	ShopAmmo      = "ammo"
	ShopGrenades  = "grenade"
	ShopShield    = "shield"
	ShopMaxHealth = "maxHealth"
)

// ShopItem is a consumable bought mid-run with profile currency
type ShopItem struct {
	ID          string
	Name        string
	Description string
	Cost        int
	MinWave     int
}

// Available reports whether the item is on sale at wave
func (s ShopItem) Available(wave int) bool { return wave >= s.MinWave }

// Affordable reports whether the item is on sale at wave and funds cover it
func (s ShopItem) Affordable(wave, funds int) bool {
	return s.Available(wave) && funds >= s.Cost
}

var shopItems = []ShopItem{
	{ShopHeal25, "+25 HP", "Restore 25 health", 30, 1},
	{ShopHeal50, "+50 HP", "Restore 50 health", 50, 3},
	{ShopHealFull, "FULL HP", "Restore all health", 100, 5},
	{ShopAmmo, "AMMO REFILL", "Refill ammo instantly", 25, 1},
	{ShopGrenades, "+2 GRENADES", "Add 2 grenades", 60, 1},
	{ShopShield, "SHIELD", "Activate shield now", 80, 5},
	{ShopMaxHealth, "+20 MAX HP", "Increase max health", 150, 7},
}

// ShopItems returns the shop in display order
func ShopItems() []ShopItem {
	return append([]ShopItem(nil), shopItems...)
}

// LookupShopItem returns the shop item for id
func LookupShopItem(id string) (ShopItem, bool) {
	for _, s := range shopItems {
		if s.ID == id {
			return s, true
		}
	}
	return ShopItem{}, false
}
