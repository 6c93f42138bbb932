package core

// DefaultWeaponID is the weapon every profile owns from the start
const DefaultWeaponID = "pistol"

// Profile is the persisted cross-run state. The simulation reads it at run
// start and never writes it; the save collaborator merges ProfileDeltas.
type Profile struct {
	Currency           int            `msgpack:"currency"`
	BestWave           int            `msgpack:"best_wave"`
	BestLevel          int            `msgpack:"best_level"`
	BestScore          int            `msgpack:"best_score"`
	BestCombo          int            `msgpack:"best_combo"`
	Unlocked           []string       `msgpack:"unlocked"`
	Equipped           string         `msgpack:"equipped"`
	Upgrades           map[string]int `msgpack:"upgrades"`
	TutorialComplete   bool           `msgpack:"tutorial_complete"`
	OnboardingComplete bool           `msgpack:"onboarding_complete"`
	GamesPlayed        int            `msgpack:"games_played"`
	TotalKills         int            `msgpack:"total_kills"`
	TotalPlayTicks     uint64         `msgpack:"total_play_ticks"`
}

// DefaultProfile returns the state of a brand new player
func DefaultProfile() Profile {
	return Profile{
		Unlocked: []string{DefaultWeaponID},
		Equipped: DefaultWeaponID,
		Upgrades: make(map[string]int),
	}
}

// Level returns the permanent upgrade level for id (0 when never bought)
func (p Profile) Level(id string) int {
	if p.Upgrades == nil {
		return 0
	}
	return p.Upgrades[id]
}

// Owns reports whether the weapon id has been unlocked
func (p Profile) Owns(id string) bool {
	for _, w := range p.Unlocked {
		if w == id {
			return true
		}
	}
	return false
}

// RunSummary describes a finished run
type RunSummary struct {
	Wave         int
	Level        int
	Score        int
	SessionXP    int
	Kills        int
	HighestCombo int
	Ticks        uint64
	Spent        int // currency spent in the shop during the run
	Died         bool
}

// ProfileDelta is what a run contributes to the persisted profile
type ProfileDelta struct {
	EarnedCurrency int
	SpentCurrency  int
	Wave           int
	Level          int
	Score          int
	Combo          int
	Kills          int
	PlayTicks      uint64
}

// Delta converts a run summary to its profile contribution. Session XP is
// the cross-run currency.
func (r RunSummary) Delta() ProfileDelta {
	return ProfileDelta{
		EarnedCurrency: r.SessionXP,
		SpentCurrency:  r.Spent,
		Wave:           r.Wave,
		Level:          r.Level,
		Score:          r.Score,
		Combo:          r.HighestCombo,
		Kills:          r.Kills,
		PlayTicks:      r.Ticks,
	}
}

// Merge folds d into a copy of p: currency and counters add, bests keep the
// max. Shop spending is debited, never below zero.
func (p Profile) Merge(d ProfileDelta) Profile {
	out := p
	out.Unlocked = append([]string(nil), p.Unlocked...)
	out.Upgrades = make(map[string]int, len(p.Upgrades))
	for k, v := range p.Upgrades {
		out.Upgrades[k] = v
	}
	out.Currency = max(0, out.Currency+d.EarnedCurrency-d.SpentCurrency)
	out.BestWave = max(out.BestWave, d.Wave)
	out.BestLevel = max(out.BestLevel, d.Level)
	out.BestScore = max(out.BestScore, d.Score)
	out.BestCombo = max(out.BestCombo, d.Combo)
	out.GamesPlayed++
	out.TotalKills += d.Kills
	out.TotalPlayTicks += d.PlayTicks
	return out
}
