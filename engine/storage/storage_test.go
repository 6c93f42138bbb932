package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/upgrade"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	s := openTemp(t)
	p, err := s.Load(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if p.Equipped != core.DefaultWeaponID || !p.Owns(core.DefaultWeaponID) || p.Upgrades == nil {
		t.Fatalf("default profile = %+v", p)
	}
}

func TestSaveLoad(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	want := core.DefaultProfile()
	want.Currency = 420
	want.BestWave = 7
	want.BestCombo = 18
	want.Unlocked = append(want.Unlocked, "shotgun")
	want.Equipped = "shotgun"
	want.Upgrades[upgrade.PermArmor] = 3
	want.TutorialComplete = true
	want.TotalPlayTicks = 1 << 40

	if err := s.Save(ctx, "p1", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Currency != 420 || got.BestWave != 7 || got.BestCombo != 18 || got.Equipped != "shotgun" {
		t.Fatalf("scalars = %+v", got)
	}
	if !got.Owns("shotgun") || got.Level(upgrade.PermArmor) != 3 {
		t.Fatalf("blobs = unlocked %v upgrades %v", got.Unlocked, got.Upgrades)
	}
	if !got.TutorialComplete || got.TotalPlayTicks != 1<<40 {
		t.Fatalf("flags = %+v", got)
	}

	// overwrite
	want.Currency = 5
	if err := s.Save(ctx, "p1", want); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Load(ctx, "p1"); got.Currency != 5 {
		t.Fatalf("currency after overwrite = %d", got.Currency)
	}
}

func TestApplyRunEnd(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	runs := []core.ProfileDelta{
		{EarnedCurrency: 150, Wave: 4, Level: 3, Score: 900, Combo: 6, Kills: 20, PlayTicks: 3600},
		{EarnedCurrency: 50, Wave: 2, Level: 5, Score: 300, Combo: 12, Kills: 5, PlayTicks: 600},
	}
	var p core.Profile
	var err error
	for _, d := range runs {
		if p, err = s.ApplyRunEnd(ctx, "p", d); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.Load(ctx, "p")
	if err != nil {
		t.Fatal(err)
	}
	if got.Currency != p.Currency {
		t.Fatalf("returned profile %d differs from stored %d", p.Currency, got.Currency)
	}
	want := struct{ currency, wave, level, score, combo, games, kills int }{200, 4, 5, 900, 12, 2, 25}
	have := struct{ currency, wave, level, score, combo, games, kills int }{
		got.Currency, got.BestWave, got.BestLevel, got.BestScore, got.BestCombo, got.GamesPlayed, got.TotalKills,
	}
	if have != want {
		t.Fatalf("merged = %+v, want %+v", have, want)
	}
	if got.TotalPlayTicks != 4200 {
		t.Fatalf("play ticks = %d", got.TotalPlayTicks)
	}
}

func TestApplyRunEndDebitsShopSpending(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	p := core.DefaultProfile()
	p.Currency = 200
	if err := s.Save(ctx, "p", p); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplyRunEnd(ctx, "p", core.ProfileDelta{EarnedCurrency: 30, SpentCurrency: 110}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "p")
	if err != nil {
		t.Fatal(err)
	}
	if got.Currency != 120 {
		t.Fatalf("currency = %d, want 120", got.Currency)
	}
}

func TestBuyUpgrade(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	p := core.DefaultProfile()
	p.Currency = 300
	if err := s.Save(ctx, "p", p); err != nil {
		t.Fatal(err)
	}

	// maxHealth costs 100, then 150
	got, err := s.BuyUpgrade(ctx, "p", upgrade.PermMaxHealth)
	if err != nil {
		t.Fatal(err)
	}
	if got.Currency != 200 || got.Level(upgrade.PermMaxHealth) != 1 {
		t.Fatalf("after first buy: %+v", got)
	}
	if got, err = s.BuyUpgrade(ctx, "p", upgrade.PermMaxHealth); err != nil || got.Currency != 50 {
		t.Fatalf("second buy: currency %d err %v", got.Currency, err)
	}
	if _, err = s.BuyUpgrade(ctx, "p", upgrade.PermMaxHealth); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("third buy err = %v", err)
	}
	if _, err = s.BuyUpgrade(ctx, "p", "nope"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("unknown err = %v", err)
	}

	stored, _ := s.Load(ctx, "p")
	if stored.Currency != 50 || stored.Level(upgrade.PermMaxHealth) != 2 {
		t.Fatalf("failed purchase changed the profile: %+v", stored)
	}

	p.Currency = 1 << 20
	p.Upgrades = map[string]int{upgrade.PermBulletPierce: 3}
	if err := s.Save(ctx, "rich", p); err != nil {
		t.Fatal(err)
	}
	if _, err := s.BuyUpgrade(ctx, "rich", upgrade.PermBulletPierce); !errors.Is(err, ErrMaxLevel) {
		t.Fatalf("capped err = %v", err)
	}
}

func TestUnlockAndEquip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	p := core.DefaultProfile()
	p.Currency = 1000
	p.BestWave, p.BestLevel = 3, 2
	if err := s.Save(ctx, "p", p); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Equip(ctx, "p", "shotgun"); !errors.Is(err, ErrLocked) {
		t.Fatalf("equip locked err = %v", err)
	}

	tests := []struct {
		weapon   string
		currency int
	}{
		{"dualPistol", 800}, // requirements met: 200
		{"shotgun", 100},    // early: 2 x 350
		{"shotgun", 100},    // already owned
	}
	for _, tt := range tests {
		got, err := s.UnlockWeapon(ctx, "p", tt.weapon)
		if err != nil {
			t.Fatalf("unlock %s: %v", tt.weapon, err)
		}
		if got.Currency != tt.currency || !got.Owns(tt.weapon) {
			t.Fatalf("unlock %s: currency %d owns %v", tt.weapon, got.Currency, got.Owns(tt.weapon))
		}
	}
	if _, err := s.UnlockWeapon(ctx, "p", "railgun"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("railgun err = %v", err)
	}

	got, err := s.Equip(ctx, "p", "shotgun")
	if err != nil || got.Equipped != "shotgun" {
		t.Fatalf("equip: %+v %v", got, err)
	}
}

func TestRunSaver(t *testing.T) {
	s := openTemp(t)
	var saved []core.Profile
	sink := &RunSaver{Store: s, ProfileID: "p", Tutorial: true, Saved: func(p core.Profile) { saved = append(saved, p) }}

	var events core.EventSink = core.Sinks{core.NopSink{}, sink}
	events.OnRunEnd(core.ProfileDelta{EarnedCurrency: 30, Wave: 1, Kills: 2})

	if len(saved) != 1 || saved[0].Currency != 30 || !saved[0].TutorialComplete {
		t.Fatalf("saved = %+v", saved)
	}
	p, err := s.Load(context.Background(), "p")
	if err != nil || p.GamesPlayed != 1 || !p.OnboardingComplete {
		t.Fatalf("stored = %+v, %v", p, err)
	}
}
