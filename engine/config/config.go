package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the game reads
const EnvPrefix = "CODECRASH_"

// Hard bounds enforced by Clamp
const (
	MinTickRate = 30
	MaxTickRate = 240
	MinWidth    = 320
	MaxWidth    = 3840
	MinHeight   = 240
	MaxHeight   = 2160
)

// Config holds the host settings for one game process
type Config struct {
	Width      int
	Height     int
	TickRate   int
	Seed       int64 // 0 = time based
	Tutorial   bool
	Weapon     string // starting weapon override, "" = profile's equipped
	DBPath     string
	ProfileID  string
	FeedAddr   string // "" disables the websocket feed
	StatsEvery int    // ticks between feed stats frames
	RecordPath string // "" disables replay recording
	ReplayPath string
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Width:      1280,
		Height:     720,
		TickRate:   60,
		DBPath:     "codecrash.db",
		ProfileID:  "local",
		StatsEvery: 6,
	}
}

// Load builds a Config from defaults, then the dotenv file at envFile (a
// missing file is fine), then CODECRASH_* environment variables, which
// win over the file. The result is clamped.
func Load(envFile string) (Config, error) {
	cfg := Default()
	file := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			file = m
			log.Printf("config: loaded %s", envFile)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := file[EnvPrefix+key]
		return v, ok
	}
	if err := cfg.apply(lookup); err != nil {
		return cfg, err
	}
	Clamp(&cfg)
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	var errs []error
	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	strVar := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	intVar("WIDTH", &c.Width)
	intVar("HEIGHT", &c.Height)
	intVar("TICK_RATE", &c.TickRate)
	intVar("STATS_EVERY", &c.StatsEvery)
	strVar("WEAPON", &c.Weapon)
	strVar("DB", &c.DBPath)
	strVar("PROFILE", &c.ProfileID)
	strVar("FEED_ADDR", &c.FeedAddr)
	strVar("RECORD", &c.RecordPath)
	strVar("REPLAY", &c.ReplayPath)
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Seed = n
		}
	}
	if v, ok := lookup("TUTORIAL"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTUTORIAL: %w", EnvPrefix, err))
		} else {
			c.Tutorial = b
		}
	}
	return errors.Join(errs...)
}

// RegisterFlags binds command-line overrides for the current values to
// flags. Call Clamp after parsing.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.Width, "width", c.Width, "arena width in pixels")
	flags.IntVar(&c.Height, "height", c.Height, "arena height in pixels")
	flags.IntVar(&c.TickRate, "tps", c.TickRate, "simulation ticks per second")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "RNG seed (0 = time based)")
	flags.BoolVar(&c.Tutorial, "tutorial", c.Tutorial, "start in tutorial mode")
	flags.StringVar(&c.Weapon, "weapon", c.Weapon, "starting weapon id override")
	flags.StringVar(&c.DBPath, "db", c.DBPath, "profile database path")
	flags.StringVar(&c.ProfileID, "profile", c.ProfileID, "profile id")
	flags.StringVar(&c.FeedAddr, "feed", c.FeedAddr, "websocket feed listen address (empty = off)")
	flags.IntVar(&c.StatsEvery, "stats-every", c.StatsEvery, "ticks between feed stats frames")
	flags.StringVar(&c.RecordPath, "record", c.RecordPath, "record the run's commands to this file")
	flags.StringVar(&c.ReplayPath, "replay", c.ReplayPath, "replay file to play back")
}

// Clamp forces cfg into the supported ranges in place
func Clamp(cfg *Config) {
	cfg.TickRate = clampInt(cfg.TickRate, MinTickRate, MaxTickRate)
	cfg.Width = clampInt(cfg.Width, MinWidth, MaxWidth)
	cfg.Height = clampInt(cfg.Height, MinHeight, MaxHeight)
	if cfg.StatsEvery < 1 {
		cfg.StatsEvery = 1
	}
	if cfg.ProfileID == "" {
		cfg.ProfileID = Default().ProfileID
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
