package wave

import "testing"

func TestQuota(t *testing.T) {
	tests := []struct {
		wave     int
		tutorial bool
		want     int
	}{
		{1, false, 2},
		{2, false, 3},
		{3, false, 6},
		{5, false, 8},
		{6, false, 14},
		{7, false, 15},
		{10, false, 20},
		{8, true, TutorialQuota},
	}
	for _, tt := range tests {
		if got := Quota(tt.wave, tt.tutorial); got != tt.want {
			t.Errorf("Quota(%d, %v) = %d, want %d", tt.wave, tt.tutorial, got, tt.want)
		}
	}
}

func TestPumpStaggersSpawns(t *testing.T) {
	d := NewDirector(false)
	d.Begin(1)

	var at []int
	for tick := 0; tick < 200; tick++ {
		d.Pump(func() bool {
			at = append(at, tick)
			return true
		})
	}
	if len(at) != 2 {
		t.Fatalf("spawned %d hostiles, want 2", len(at))
	}
	if at[0] != 0 || at[1] != 48 {
		t.Fatalf("spawn ticks = %v, want [0 48]", at)
	}
	if d.Phase() != Clearing {
		t.Fatalf("phase = %v, want clearing", d.Phase())
	}
}

func TestRefusedSpawnIsRetried(t *testing.T) {
	d := NewDirector(false)
	d.Begin(1)
	d.Pump(func() bool { return false })
	d.Pump(func() bool { return false })
	if d.Spawned() != 0 {
		t.Fatalf("spawned = %d after refusals", d.Spawned())
	}
	d.Pump(func() bool { return true })
	if d.Spawned() != 1 {
		t.Fatalf("spawned = %d, want 1", d.Spawned())
	}
}

func TestClearRequiresAllConditions(t *testing.T) {
	d := NewDirector(false)
	d.Begin(1)
	spawn := func() bool { return true }
	for d.Phase() == Spawning {
		d.Pump(spawn)
	}

	d.RecordKill()
	if d.Cleared(0) {
		t.Fatal("cleared with one of two kills")
	}
	d.RecordKill()
	if d.Cleared(1) {
		t.Fatal("cleared with a live hostile")
	}
	if !d.Cleared(0) {
		t.Fatal("wave should be cleared")
	}
}

func TestInterludeAdvancesAndAnnouncesOnce(t *testing.T) {
	d := NewDirector(false)
	d.Begin(2)
	d.BeginInterlude()
	ticks := 0
	for !d.TickInterlude() {
		ticks++
		if ticks > 1000 {
			t.Fatal("interlude never ended")
		}
	}
	if ticks+1 != int(InterWaveDelay(2)) {
		t.Fatalf("interlude lasted %d ticks, want %v", ticks+1, InterWaveDelay(2))
	}

	f, ok := d.Begin(3)
	if !ok || f != "Fast Enemies" {
		t.Fatalf("wave 3 unlock = %q %v", f, ok)
	}
	if d.Total() <= 3 {
		t.Fatalf("wave 3 quota %d not larger than wave 2", d.Total())
	}
	if _, ok := d.Begin(3); ok {
		t.Fatal("unlock announced twice")
	}
	if _, ok := d.Begin(4); ok {
		t.Fatal("wave 4 has no unlock")
	}
}

func TestCancelStopsSchedule(t *testing.T) {
	d := NewDirector(false)
	d.Begin(4)
	d.Cancel()
	called := false
	d.Pump(func() bool { called = true; return true })
	if called {
		t.Fatal("spawn ran after cancel")
	}
	if d.TickInterlude() {
		t.Fatal("interlude ran after cancel")
	}
}
