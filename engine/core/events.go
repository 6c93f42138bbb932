package core

// Stats is the flat display record emitted after every simulated tick
type Stats struct {
	Tick              uint64  `msgpack:"tick"`
	Health            int     `msgpack:"hp"`
	MaxHealth         int     `msgpack:"max_hp"`
	Ammo              int     `msgpack:"ammo"`
	MaxAmmo           int     `msgpack:"max_ammo"`
	Reloading         bool    `msgpack:"reloading"`
	XP                int     `msgpack:"xp"`
	XPToLevel         int     `msgpack:"xp_to_level"`
	Level             int     `msgpack:"level"`
	SessionXP         int     `msgpack:"session_xp"`
	Funds             int     `msgpack:"funds"`
	Wave              int     `msgpack:"wave"`
	Score             int     `msgpack:"score"`
	Kills             int     `msgpack:"kills"`
	Combo             int     `msgpack:"combo"`
	WeaponName        string  `msgpack:"weapon"`
	Grenades          int     `msgpack:"grenades"`
	MaxGrenades       int     `msgpack:"max_grenades"`
	ShieldActive      bool    `msgpack:"shield"`
	ShieldHealth      float64 `msgpack:"shield_hp"`
	ShieldMaxHealth   float64 `msgpack:"shield_max_hp"`
	ShieldCooldown    float64 `msgpack:"shield_cd"`
	ShieldMaxCooldown float64 `msgpack:"shield_max_cd"`
}

// UpgradeOption describes one in-run upgrade offered after a pickup
type UpgradeOption struct {
	ID          string `msgpack:"id"`
	Name        string `msgpack:"name"`
	Description string `msgpack:"desc"`
}

// EventSink receives every outward notification of a run. The simulation
// depends only on this interface; UI, feed and save collaborators
// implement it.
type EventSink interface {
	OnStats(s Stats)
	OnUpgradeOffer(options []UpgradeOption)
	OnFeatureUnlock(feature string)
	OnCombo(combo int, message string)
	OnLevelUp(level int)
	OnWaveStart(wave int)
	OnPauseChange(paused bool)
	OnGameOver(summary RunSummary)
	OnRunEnd(delta ProfileDelta)
}

// NopSink ignores every event. Embed it to implement a subset.
type NopSink struct{}

func (NopSink) OnStats(Stats)                  {}
func (NopSink) OnUpgradeOffer([]UpgradeOption) {}
func (NopSink) OnFeatureUnlock(string)         {}
func (NopSink) OnCombo(int, string)            {}
func (NopSink) OnLevelUp(int)                  {}
func (NopSink) OnWaveStart(int)                {}
func (NopSink) OnPauseChange(bool)             {}
func (NopSink) OnGameOver(RunSummary)          {}
func (NopSink) OnRunEnd(ProfileDelta)          {}

// Sinks dispatches each event to every listener in registration order
type Sinks []EventSink

func (ss Sinks) OnStats(s Stats) {
	for _, h := range ss {
		h.OnStats(s)
	}
}

func (ss Sinks) OnUpgradeOffer(options []UpgradeOption) {
	for _, h := range ss {
		h.OnUpgradeOffer(options)
	}
}

func (ss Sinks) OnFeatureUnlock(feature string) {
	for _, h := range ss {
		h.OnFeatureUnlock(feature)
	}
}

func (ss Sinks) OnCombo(combo int, message string) {
	for _, h := range ss {
		h.OnCombo(combo, message)
	}
}

func (ss Sinks) OnLevelUp(level int) {
	for _, h := range ss {
		h.OnLevelUp(level)
	}
}

func (ss Sinks) OnWaveStart(wave int) {
	for _, h := range ss {
		h.OnWaveStart(wave)
	}
}

func (ss Sinks) OnPauseChange(paused bool) {
	for _, h := range ss {
		h.OnPauseChange(paused)
	}
}

func (ss Sinks) OnGameOver(summary RunSummary) {
	for _, h := range ss {
		h.OnGameOver(summary)
	}
}

func (ss Sinks) OnRunEnd(delta ProfileDelta) {
	for _, h := range ss {
		h.OnRunEnd(delta)
	}
}
