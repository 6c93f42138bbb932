package core

import (
	"math"
	"testing"
)

func TestArenaHandles(t *testing.T) {
	var a Arena[int]
	h1 := a.Insert(1)
	h2 := a.Insert(2)
	if a.Len() != 2 || a.Live() != 2 {
		t.Fatalf("len/live = %d/%d, want 2/2", a.Len(), a.Live())
	}
	if v := a.Get(h2); v == nil || *v != 2 {
		t.Fatalf("Get(h2) = %v", v)
	}

	if !a.Kill(h1) {
		t.Fatal("first kill should succeed")
	}
	if a.Kill(h1) {
		t.Fatal("second kill should report false")
	}
	if a.Alive(h1) {
		t.Fatal("killed handle still alive")
	}
	if a.Get(h1) == nil {
		t.Fatal("killed entity should stay readable until Sweep")
	}
	if a.Len() != 2 || a.Live() != 1 {
		t.Fatalf("len/live before sweep = %d/%d, want 2/1", a.Len(), a.Live())
	}

	var seen []int
	a.Each(func(_ Handle, v *int) { seen = append(seen, *v) })
	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("Each visited %v, want [2]", seen)
	}

	a.Sweep()
	if a.Len() != 1 {
		t.Fatalf("len after sweep = %d", a.Len())
	}
	h3 := a.Insert(3)
	if h3.Index != h1.Index {
		t.Fatalf("freed slot not reused: %v vs %v", h3, h1)
	}
	if a.Get(h1) != nil {
		t.Fatal("stale handle resolved to the new occupant")
	}
	if v := a.Get(h3); v == nil || *v != 3 {
		t.Fatalf("Get(h3) = %v", v)
	}
}

func TestArenaKillDuringEach(t *testing.T) {
	var a Arena[int]
	for i := 0; i < 5; i++ {
		a.Insert(i)
	}
	visits := 0
	a.Each(func(h Handle, v *int) {
		visits++
		if *v%2 == 0 {
			a.Kill(h)
		}
	})
	if visits != 5 {
		t.Fatalf("visits = %d, want 5", visits)
	}
	a.Sweep()
	if a.Len() != 2 {
		t.Fatalf("len = %d, want 2", a.Len())
	}
}

func TestArenaReset(t *testing.T) {
	var a Arena[string]
	h := a.Insert("a")
	a.Insert("b")
	a.Reset()
	if a.Len() != 0 || a.Get(h) != nil {
		t.Fatalf("reset left len %d, handle valid %v", a.Len(), a.Get(h) != nil)
	}
	n := a.Insert("c")
	if n.Index != 0 || n == h {
		t.Fatalf("insert after reset = %v, old %v", n, h)
	}
}

func TestVec(t *testing.T) {
	if _, ok := (Vec2{}).Normalize(); ok {
		t.Fatal("zero vector should not normalize")
	}
	n, ok := V(3, 4).Normalize()
	if !ok || math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("Normalize = %v, %v", n, ok)
	}
	if d := V(0, 0).DistanceTo(V(3, 4)); d != 5 {
		t.Fatalf("distance = %v", d)
	}
	if a := V(0, 0).AngleTo(V(0, 1)); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Fatalf("angle = %v", a)
	}
	f := FromAngle(math.Pi, 2)
	if math.Abs(f.X+2) > 1e-12 || math.Abs(f.Y) > 1e-12 {
		t.Fatalf("FromAngle = %v", f)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		b    Vec2
		want bool
	}{
		{"inside", V(5, 0), true},
		{"touching", V(10, 0), false},
		{"apart", V(11, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(V(0, 0), 4, tt.b, 6); got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := Rect{W: 100, H: 50}
	if !r.Contains(V(-5, 10), 10) || r.Contains(V(-15, 10), 10) {
		t.Fatal("margin not honoured")
	}
	if got := r.Clamp(V(-20, 80), 15); got != V(15, 35) {
		t.Fatalf("Clamp = %v", got)
	}
	if got := r.Clamp(V(40, 20), 15); got != V(40, 20) {
		t.Fatalf("Clamp moved an inside point: %v", got)
	}
}

func TestCountdown(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{3, 2}, {0.5, 0}, {0, 0}} {
		v := tt.in
		Countdown(&v)
		if v != tt.want {
			t.Errorf("Countdown(%v) = %v, want %v", tt.in, v, tt.want)
		}
	}
}

type countTicker struct{ n int }

func (c *countTicker) Tick() { c.n++ }

func TestGameLoopAdvance(t *testing.T) {
	tests := []struct {
		name   string
		frames []float64
		want   int
	}{
		{"half second", []float64{0.5}, 32},
		{"capped frame", []float64{1}, 16},
		{"accumulates", []float64{0.01, 0.01}, 1},
		{"negative", []float64{-1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &countTicker{}
			gl := NewGameLoop(c, 64)
			for _, f := range tt.frames {
				gl.Advance(f)
			}
			if c.n != tt.want || gl.Ticks() != uint64(tt.want) {
				t.Fatalf("ticks = %d (loop %d), want %d", c.n, gl.Ticks(), tt.want)
			}
		})
	}
}

func TestGameLoopResync(t *testing.T) {
	c := &countTicker{}
	gl := NewGameLoop(c, 64)
	gl.Advance(0.01)
	gl.Resync()
	gl.Advance(0.01)
	if c.n != 0 {
		t.Fatalf("resync kept accumulated time: %d ticks", c.n)
	}
	if NewGameLoop(c, 0).TickRate != DefaultTickRate {
		t.Fatal("non-positive rate should fall back to the default")
	}
}

func TestProfileMerge(t *testing.T) {
	p := DefaultProfile()
	p.Currency = 50
	p.BestWave = 6
	p.Upgrades["maxHealth"] = 1
	d := RunSummary{Wave: 4, Level: 7, Score: 300, SessionXP: 120, Kills: 9, HighestCombo: 5, Ticks: 600}.Delta()

	got := p.Merge(d)
	if got.Currency != 170 || got.BestWave != 6 || got.BestLevel != 7 || got.BestScore != 300 || got.BestCombo != 5 {
		t.Fatalf("merged bests wrong: %+v", got)
	}
	if got.GamesPlayed != 1 || got.TotalKills != 9 || got.TotalPlayTicks != 600 {
		t.Fatalf("merged counters wrong: %+v", got)
	}

	got.Upgrades["maxHealth"] = 5
	got.Unlocked[0] = "shotgun"
	if p.Level("maxHealth") != 1 || !p.Owns(DefaultWeaponID) {
		t.Fatal("Merge aliased the original profile")
	}
	if (Profile{}).Level("x") != 0 {
		t.Fatal("nil upgrades should read as level 0")
	}
}

func TestProfileMergeDebitsShopSpending(t *testing.T) {
	p := DefaultProfile()
	p.Currency = 100
	d := RunSummary{SessionXP: 40, Spent: 60}.Delta()
	if d.SpentCurrency != 60 {
		t.Fatalf("delta spent = %d", d.SpentCurrency)
	}
	if got := p.Merge(d).Currency; got != 80 {
		t.Fatalf("currency = %d, want 80", got)
	}
	if got := p.Merge(ProfileDelta{SpentCurrency: 500}).Currency; got != 0 {
		t.Fatalf("overspent currency = %d, want 0", got)
	}
}
