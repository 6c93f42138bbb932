package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame kinds sent over the feed
const (
	FrameStats   = "stats"
	FrameOffer   = "offer"
	FrameUnlock  = "unlock"
	FrameCombo   = "combo"
	FrameLevelUp = "level"
	FrameWave    = "wave"
	FramePause   = "pause"
	FrameOver    = "over"
	FrameRunEnd  = "run_end"
)

// Frame is one msgpack message on the feed
type Frame struct {
	Kind    string               `msgpack:"k"`
	Stats   *core.Stats          `msgpack:"s,omitempty"`
	Offer   []core.UpgradeOption `msgpack:"o,omitempty"`
	Text    string               `msgpack:"t,omitempty"`
	Value   int                  `msgpack:"v,omitempty"`
	Summary *core.RunSummary     `msgpack:"sum,omitempty"`
	Delta   *core.ProfileDelta   `msgpack:"d,omitempty"`
}

const (
	sendBuffer   = 64
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
)

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed broadcasts run events to websocket displays. It implements
// core.EventSink; publishing never blocks the tick, and a client whose
// buffer is full misses frames instead.
type Feed struct {
	// StatsEvery sends one stats frame per this many ticks (1 = every tick)
	StatsEvery uint64

	mu       sync.Mutex
	clients  map[*feedClient]struct{}
	upgrader websocket.Upgrader
	dropped  uint64
}

// NewFeed returns a feed with no clients
func NewFeed(statsEvery uint64) *Feed {
	if statsEvery == 0 {
		statsEvery = 1
	}
	return &Feed{
		StatsEvery: statsEvery,
		clients:    make(map[*feedClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and registers the display
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("feed: upgrade:", err)
		return
	}
	c := &feedClient{conn: conn, send: make(chan []byte, sendBuffer)}
	f.mu.Lock()
	f.clients[c] = struct{}{}
	n := len(f.clients)
	f.mu.Unlock()
	log.Printf("feed: display connected from %s (%d total)", r.RemoteAddr, n)

	go f.writePump(c)
	f.readPump(c)
}

// readPump only watches for the peer going away
func (f *Feed) readPump(c *feedClient) {
	defer f.drop(c)
	c.conn.SetReadLimit(1 << 10)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) writePump(c *feedClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (f *Feed) drop(c *feedClient) {
	f.mu.Lock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		close(c.send)
	}
	n := len(f.clients)
	f.mu.Unlock()
	log.Printf("feed: display disconnected (%d left)", n)
}

// Clients returns the number of connected displays
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Dropped returns how many frames were skipped for slow displays
func (f *Feed) Dropped() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

func (f *Feed) publish(fr Frame) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.clients) == 0 {
		return
	}
	data, err := msgpack.Marshal(&fr)
	if err != nil {
		log.Printf("feed: encode %s frame: %v", fr.Kind, err)
		return
	}
	for c := range f.clients {
		select {
		case c.send <- data:
		default:
			f.dropped++
		}
	}
}

// Close disconnects every display
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		delete(f.clients, c)
		close(c.send)
	}
}

// ListenAndServe serves the feed at /ws on addr until ctx is cancelled
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", f)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("feed: listening on %s (ws endpoint: /ws)", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("feed listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		f.Close()
		return srv.Shutdown(shutdownCtx)
	}
}

func (f *Feed) OnStats(s core.Stats) {
	if s.Tick%f.StatsEvery != 0 {
		return
	}
	f.publish(Frame{Kind: FrameStats, Stats: &s})
}

func (f *Feed) OnUpgradeOffer(options []core.UpgradeOption) {
	f.publish(Frame{Kind: FrameOffer, Offer: options})
}

func (f *Feed) OnFeatureUnlock(feature string) {
	f.publish(Frame{Kind: FrameUnlock, Text: feature})
}

func (f *Feed) OnCombo(combo int, message string) {
	f.publish(Frame{Kind: FrameCombo, Value: combo, Text: message})
}

func (f *Feed) OnLevelUp(level int) {
	f.publish(Frame{Kind: FrameLevelUp, Value: level})
}

func (f *Feed) OnWaveStart(wave int) {
	f.publish(Frame{Kind: FrameWave, Value: wave})
}

func (f *Feed) OnPauseChange(paused bool) {
	v := 0
	if paused {
		v = 1
	}
	f.publish(Frame{Kind: FramePause, Value: v})
}

func (f *Feed) OnGameOver(summary core.RunSummary) {
	f.publish(Frame{Kind: FrameOver, Summary: &summary})
}

func (f *Feed) OnRunEnd(delta core.ProfileDelta) {
	f.publish(Frame{Kind: FrameRunEnd, Delta: &delta})
}

var _ core.EventSink = (*Feed)(nil)
