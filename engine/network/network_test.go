package network

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/1siamBot/code-crash/engine/hostile"
	"github.com/1siamBot/code-crash/engine/sim"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func TestCommandStream(t *testing.T) {
	in := core.Input{Up: true, Fire: true, Dash: true, Aim: core.V(123.5, 77)}
	cmds := []Command{
		InputCommand(4, in),
		{Tick: 9, Type: CmdChoose, Param: "damage"},
		{Tick: 12, Type: CmdResize, X: 1024, Y: 768},
	}
	var buf bytes.Buffer
	for i := range cmds {
		if err := cmds[i].Encode(&buf); err != nil {
			t.Fatalf("encode %d: %v", i, err)
		}
	}

	r := bytes.NewReader(buf.Bytes())
	for i, want := range cmds {
		var got Command
		if err := got.Decode(r); err != nil {
			t.Fatalf("decode %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("command %d = %+v, want %+v", i, got, want)
		}
	}
	var extra Command
	if err := extra.Decode(r); !errors.Is(err, io.EOF) {
		t.Fatalf("end of stream error = %v, want io.EOF", err)
	}

	if got := cmds[0].Input(); got != in {
		t.Fatalf("input round trip = %+v, want %+v", got, in)
	}

	short := bytes.NewReader(buf.Bytes()[:frameHeader-3])
	if err := extra.Decode(short); !errors.Is(err, ErrShortFrame) {
		t.Fatalf("truncated frame error = %v, want ErrShortFrame", err)
	}
}

func botInput(w *sim.World, tick int) core.Input {
	in := core.Input{Fire: true, Aim: core.V(0, 0), Left: tick%120 < 60, Right: tick%120 >= 60}
	in.Dash = tick%150 == 0
	found := false
	w.EachHostile(func(h *hostile.Hostile) {
		if !found {
			in.Aim = h.Pos
			found = true
		}
	})
	return in
}

func TestReplayReproducesRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ccr")
	profile := core.DefaultProfile()
	profile.Currency = 500
	hdr := ReplayHeader{Version: 1, Seed: 11, Width: 800, Height: 600, Profile: profile}

	rec, err := NewReplayRecorder(path, hdr)
	if err != nil {
		t.Fatal(err)
	}
	live := NewWorldFromHeader(hdr, nil)
	s := NewSession(live, rec)
	live.Start()
	for i := 0; i < 900 && live.Running(); i++ {
		if offer := live.Offer(); offer != nil {
			s.Issue(Command{Type: CmdChoose, Param: offer[len(offer)-1].ID})
		}
		s.Input(botInput(live, i))
		if i == 200 {
			s.Issue(Command{Type: CmdPause})
			s.Issue(Command{Type: CmdReload})
			s.Issue(Command{Type: CmdPause})
		}
		if i == 400 {
			s.Issue(Command{Type: CmdPause})
			s.Issue(Command{Type: CmdBuy, Param: "ammo"})
			s.Issue(Command{Type: CmdBuy, Param: "heal25"})
			s.Issue(Command{Type: CmdPause})
		}
		if i%250 == 0 {
			s.Issue(Command{Type: CmdGrenade})
			s.Issue(Command{Type: CmdShield})
		}
		live.Tick()
	}
	s.Issue(Command{Type: CmdStop})
	want := live.Stats()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	replay, err := LoadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	if replay.Header.Seed != 11 || len(replay.Commands) == 0 {
		t.Fatalf("header=%+v commands=%d", replay.Header, len(replay.Commands))
	}
	got := Play(replay, NewWorldFromHeader(replay.Header, nil), 10000)
	if got != want {
		t.Fatalf("replay diverged:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadReplayReportsTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.ccr")
	rec, err := NewReplayRecorder(path, ReplayHeader{Seed: 1, Width: 640, Height: 480})
	if err != nil {
		t.Fatal(err)
	}
	rec.Record(Command{Tick: 1, Type: CmdReload})
	rec.Record(Command{Tick: 2, Type: CmdChoose, Param: "heal"})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-2], 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadReplay(path)
	if !errors.Is(err, ErrShortFrame) {
		t.Fatalf("error = %v, want ErrShortFrame", err)
	}
	if r == nil || len(r.Commands) != 1 || len(r.CommandsForTick(1)) != 1 {
		t.Fatalf("expected the intact command to survive: %+v", r)
	}

	if err := os.WriteFile(path, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadReplay(path); err == nil || !strings.Contains(err.Error(), "not a replay") {
		t.Fatalf("bad magic error = %v", err)
	}
}

func TestApplyIgnoresStoppedWorld(t *testing.T) {
	w := sim.New(sim.Options{Bounds: core.Rect{W: 800, H: 600}, Profile: core.DefaultProfile()})
	w.Start()
	if !Apply(w, Command{Type: CmdResize, X: 1000, Y: 700}) || w.Bounds().W != 1000 {
		t.Fatal("resize not applied to a running world")
	}
	Apply(w, Command{Type: CmdStop})
	for _, c := range []Command{{Type: CmdInput}, {Type: CmdPause}, {Type: CmdReload}, {Type: CmdResize, X: 10, Y: 10}, {Type: CmdBuy, Param: "ammo"}} {
		if Apply(w, c) {
			t.Fatalf("%v accepted after stop", c.Type)
		}
	}
}

func TestFeedBroadcastsFrames(t *testing.T) {
	feed := NewFeed(2)
	srv := httptest.NewServer(feed)
	defer srv.Close()
	defer feed.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for feed.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("display never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	feed.OnStats(core.Stats{Tick: 1, Score: 5})
	feed.OnStats(core.Stats{Tick: 2, Score: 10})
	feed.OnWaveStart(3)

	read := func() Frame {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		mt, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if mt != websocket.BinaryMessage {
			t.Fatalf("message type = %d, want binary", mt)
		}
		var fr Frame
		if err := msgpack.Unmarshal(data, &fr); err != nil {
			t.Fatal(err)
		}
		return fr
	}

	if fr := read(); fr.Kind != FrameStats || fr.Stats == nil || fr.Stats.Score != 10 {
		t.Fatalf("first frame = %+v, want throttled stats for tick 2", fr)
	}
	if fr := read(); fr.Kind != FrameWave || fr.Value != 3 {
		t.Fatalf("second frame = %+v", fr)
	}
}
