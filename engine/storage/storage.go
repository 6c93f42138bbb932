package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/upgrade"
	"github.com/1siamBot/code-crash/engine/weapon"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrNotFound means no profile is stored under the id
	ErrNotFound = errors.New("storage: profile not found")
	// ErrInsufficientFunds means the profile cannot afford a purchase
	ErrInsufficientFunds = errors.New("storage: not enough currency")
	// ErrMaxLevel means a permanent upgrade is already at its cap
	ErrMaxLevel = errors.New("storage: upgrade at max level")
	// ErrUnknownItem means the weapon or upgrade id is not in the catalog
	ErrUnknownItem = errors.New("storage: unknown item")
	// ErrLocked means the weapon must be unlocked before it is equipped
	ErrLocked = errors.New("storage: weapon not unlocked")
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	currency INTEGER NOT NULL DEFAULT 0,
	best_wave INTEGER NOT NULL DEFAULT 0,
	best_level INTEGER NOT NULL DEFAULT 0,
	best_score INTEGER NOT NULL DEFAULT 0,
	best_combo INTEGER NOT NULL DEFAULT 0,
	unlocked BLOB,
	equipped TEXT NOT NULL DEFAULT '',
	upgrades BLOB,
	tutorial_complete INTEGER NOT NULL DEFAULT 0,
	onboarding_complete INTEGER NOT NULL DEFAULT 0,
	games_played INTEGER NOT NULL DEFAULT 0,
	total_kills INTEGER NOT NULL DEFAULT 0,
	total_play_ticks INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Store persists player profiles in a SQLite file
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes read-modify-write updates
}

// Open opens (creating if needed) the profile database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create profiles table: %w", err)
	}
	log.Printf("storage: profiles at %s", path)
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the profile stored under id, or the default profile with
// ErrNotFound when none exists yet. Callers that only want defaults can
// ignore ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (core.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT currency, best_wave, best_level, best_score, best_combo,
		unlocked, equipped, upgrades, tutorial_complete, onboarding_complete,
		games_played, total_kills, total_play_ticks
	FROM profiles WHERE id = ?`, id)

	var (
		p                  core.Profile
		unlocked, upgrades []byte
		playTicks          int64
	)
	err := row.Scan(&p.Currency, &p.BestWave, &p.BestLevel, &p.BestScore, &p.BestCombo,
		&unlocked, &p.Equipped, &upgrades, &p.TutorialComplete, &p.OnboardingComplete,
		&p.GamesPlayed, &p.TotalKills, &playTicks)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DefaultProfile(), ErrNotFound
	}
	if err != nil {
		return core.DefaultProfile(), fmt.Errorf("load profile %q: %w", id, err)
	}
	p.TotalPlayTicks = uint64(playTicks)
	if len(unlocked) > 0 {
		if err := msgpack.Unmarshal(unlocked, &p.Unlocked); err != nil {
			return core.DefaultProfile(), fmt.Errorf("decode unlocked weapons for %q: %w", id, err)
		}
	}
	if len(upgrades) > 0 {
		if err := msgpack.Unmarshal(upgrades, &p.Upgrades); err != nil {
			return core.DefaultProfile(), fmt.Errorf("decode upgrades for %q: %w", id, err)
		}
	}
	normalize(&p)
	return p, nil
}

// normalize restores the invariants of a profile read from disk
func normalize(p *core.Profile) {
	if !p.Owns(core.DefaultWeaponID) {
		p.Unlocked = append([]string{core.DefaultWeaponID}, p.Unlocked...)
	}
	if p.Equipped == "" || !p.Owns(p.Equipped) {
		p.Equipped = core.DefaultWeaponID
	}
	if p.Upgrades == nil {
		p.Upgrades = make(map[string]int)
	}
}

// Save writes p under id, replacing any previous profile
func (s *Store) Save(ctx context.Context, id string, p core.Profile) error {
	unlocked, err := msgpack.Marshal(p.Unlocked)
	if err != nil {
		return fmt.Errorf("encode unlocked weapons: %w", err)
	}
	upgrades, err := msgpack.Marshal(p.Upgrades)
	if err != nil {
		return fmt.Errorf("encode upgrades: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO profiles (id, currency, best_wave, best_level, best_score, best_combo,
		unlocked, equipped, upgrades, tutorial_complete, onboarding_complete,
		games_played, total_kills, total_play_ticks, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		currency = excluded.currency,
		best_wave = excluded.best_wave,
		best_level = excluded.best_level,
		best_score = excluded.best_score,
		best_combo = excluded.best_combo,
		unlocked = excluded.unlocked,
		equipped = excluded.equipped,
		upgrades = excluded.upgrades,
		tutorial_complete = excluded.tutorial_complete,
		onboarding_complete = excluded.onboarding_complete,
		games_played = excluded.games_played,
		total_kills = excluded.total_kills,
		total_play_ticks = excluded.total_play_ticks,
		updated_at = CURRENT_TIMESTAMP;`,
		id, p.Currency, p.BestWave, p.BestLevel, p.BestScore, p.BestCombo,
		unlocked, p.Equipped, upgrades, p.TutorialComplete, p.OnboardingComplete,
		p.GamesPlayed, p.TotalKills, int64(p.TotalPlayTicks))
	if err != nil {
		return fmt.Errorf("save profile %q: %w", id, err)
	}
	return nil
}

// update loads id (defaults when absent), applies fn and saves the result
func (s *Store) update(ctx context.Context, id string, fn func(*core.Profile) error) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.Load(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return p, err
	}
	if err := fn(&p); err != nil {
		return p, err
	}
	return p, s.Save(ctx, id, p)
}

// ApplyRunEnd folds a finished run into the stored profile
func (s *Store) ApplyRunEnd(ctx context.Context, id string, delta core.ProfileDelta) (core.Profile, error) {
	return s.update(ctx, id, func(p *core.Profile) error {
		*p = p.Merge(delta)
		return nil
	})
}

// BuyUpgrade spends currency on the next level of a permanent upgrade
func (s *Store) BuyUpgrade(ctx context.Context, id, upgradeID string) (core.Profile, error) {
	perm, ok := upgrade.LookupPermanent(upgradeID)
	if !ok {
		return core.Profile{}, fmt.Errorf("%w: %q", ErrUnknownItem, upgradeID)
	}
	return s.update(ctx, id, func(p *core.Profile) error {
		level := p.Level(upgradeID)
		if level >= perm.Max {
			return ErrMaxLevel
		}
		cost := perm.Cost(level)
		if p.Currency < cost {
			return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, p.Currency)
		}
		p.Currency -= cost
		p.Upgrades[upgradeID] = level + 1
		return nil
	})
}

// UnlockWeapon buys a weapon. Weapons whose wave and level requirements
// are not both met by the profile's bests cost double.
func (s *Store) UnlockWeapon(ctx context.Context, id, weaponID string) (core.Profile, error) {
	w, ok := weapon.Lookup(weaponID)
	if !ok {
		return core.Profile{}, fmt.Errorf("%w: %q", ErrUnknownItem, weaponID)
	}
	return s.update(ctx, id, func(p *core.Profile) error {
		if p.Owns(weaponID) {
			return nil
		}
		cost := w.Cost
		if p.BestWave < w.UnlockWave || p.BestLevel < w.UnlockLevel {
			cost = w.EarlyUnlockCost()
		}
		if p.Currency < cost {
			return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, p.Currency)
		}
		p.Currency -= cost
		p.Unlocked = append(p.Unlocked, weaponID)
		return nil
	})
}

// Equip selects the weapon new runs start with
func (s *Store) Equip(ctx context.Context, id, weaponID string) (core.Profile, error) {
	return s.update(ctx, id, func(p *core.Profile) error {
		if !p.Owns(weaponID) {
			return fmt.Errorf("%w: %q", ErrLocked, weaponID)
		}
		p.Equipped = weaponID
		return nil
	})
}

// CompleteTutorial marks the tutorial as played
func (s *Store) CompleteTutorial(ctx context.Context, id string) (core.Profile, error) {
	return s.update(ctx, id, func(p *core.Profile) error {
		p.TutorialComplete = true
		p.OnboardingComplete = true
		return nil
	})
}
