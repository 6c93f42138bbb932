package network

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/code-crash/engine/core"
	"github.com/vmihailenco/msgpack/v5"
)

const replayMagic = "CCRP"

// ReplayHeader holds everything needed to rebuild the starting world
type ReplayHeader struct {
	Version  int          `msgpack:"v"`
	Seed     int64        `msgpack:"seed"`
	Width    float64      `msgpack:"w"`
	Height   float64      `msgpack:"h"`
	Tutorial bool         `msgpack:"tutorial"`
	WeaponID string       `msgpack:"weapon"`
	Profile  core.Profile `msgpack:"profile"`
}

// Replay records and plays back run commands
type Replay struct {
	Header   ReplayHeader
	Commands []Command
	byTick   map[uint64][]Command
	file     *os.File
	writer   *bufio.Writer
}

// NewReplayRecorder creates a replay file and writes its header
func NewReplayRecorder(path string, hdr ReplayHeader) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	r := &Replay{Header: hdr, file: f, writer: bufio.NewWriter(f)}
	if err := writeHeader(r.writer, hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return r, nil
}

func writeHeader(w io.Writer, hdr ReplayHeader) error {
	b, err := msgpack.Marshal(&hdr)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, replayMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func readHeader(r io.Reader) (ReplayHeader, error) {
	var hdr ReplayHeader
	magic := make([]byte, len(replayMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return hdr, err
	}
	if string(magic) != replayMagic {
		return hdr, fmt.Errorf("not a replay file (magic %q)", magic)
	}
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return hdr, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return hdr, err
	}
	err := msgpack.Unmarshal(buf, &hdr)
	return hdr, err
}

// Record writes a command to the replay file
func (r *Replay) Record(cmd Command) error {
	r.add(cmd)
	if r.writer == nil {
		return nil
	}
	return cmd.Encode(r.writer)
}

func (r *Replay) add(cmd Command) {
	r.Commands = append(r.Commands, cmd)
	if r.byTick == nil {
		r.byTick = make(map[uint64][]Command)
	}
	r.byTick[cmd.Tick] = append(r.byTick[cmd.Tick], cmd)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	var err error
	if r.writer != nil {
		err = r.writer.Flush()
		r.writer = nil
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
		r.file = nil
	}
	return err
}

// LoadReplay loads a replay file. A truncated final command is dropped and
// reported with ErrShortFrame alongside the commands that did decode.
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	hdr, err := readHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("read replay header: %w", err)
	}
	replay := &Replay{Header: hdr}
	for {
		var cmd Command
		if err := cmd.Decode(reader); err != nil {
			if errors.Is(err, io.EOF) {
				return replay, nil
			}
			return replay, fmt.Errorf("replay %s after %d commands: %w", path, len(replay.Commands), err)
		}
		replay.add(cmd)
	}
}

// CommandsForTick returns all commands applied at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []Command {
	return r.byTick[tick]
}

// LastTick is the tick of the final recorded command
func (r *Replay) LastTick() uint64 {
	if len(r.Commands) == 0 {
		return 0
	}
	return r.Commands[len(r.Commands)-1].Tick
}
