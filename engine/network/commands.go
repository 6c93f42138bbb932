package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/1siamBot/code-crash/engine/core"
)

// ErrShortFrame means a command was cut off mid-frame
var ErrShortFrame = errors.New("network: short command frame")

// CmdType identifies a run command
type CmdType uint8

const (
	CmdInput CmdType = iota
	CmdReload
	CmdGrenade
	CmdShield
	CmdPause
	CmdChoose
	CmdResize
	CmdStop
	CmdBuy
)

func (t CmdType) String() string {
	switch t {
	case CmdInput:
		return "input"
	case CmdReload:
		return "reload"
	case CmdGrenade:
		return "grenade"
	case CmdShield:
		return "shield"
	case CmdPause:
		return "pause"
	case CmdChoose:
		return "choose"
	case CmdResize:
		return "resize"
	case CmdStop:
		return "stop"
	case CmdBuy:
		return "buy"
	}
	return fmt.Sprintf("cmd(%d)", uint8(t))
}

// Buttons packs the held movement and action state of an input record
type Buttons uint8

const (
	BtnUp Buttons = 1 << iota
	BtnDown
	BtnLeft
	BtnRight
	BtnFire
	BtnDash
)

const (
	frameMarker = 0xcc
	// marker, tick, type, buttons, x, y, param length
	frameHeader = 1 + 8 + 1 + 1 + 4 + 4 + 2
)

// Command is one tick-stamped action issued to a World. Tick is the number
// of ticks the world had completed when the command was applied.
type Command struct {
	Tick    uint64
	Type    CmdType
	Buttons Buttons
	X, Y    float32 // aim point for input, size for resize
	Param   string  // upgrade id for choose, item id for buy
}

// InputCommand records in as a command
func InputCommand(tick uint64, in core.Input) Command {
	var b Buttons
	set := func(on bool, bit Buttons) {
		if on {
			b |= bit
		}
	}
	set(in.Up, BtnUp)
	set(in.Down, BtnDown)
	set(in.Left, BtnLeft)
	set(in.Right, BtnRight)
	set(in.Fire, BtnFire)
	set(in.Dash, BtnDash)
	return Command{Tick: tick, Type: CmdInput, Buttons: b, X: float32(in.Aim.X), Y: float32(in.Aim.Y)}
}

// Input rebuilds the input record carried by a CmdInput command
func (c Command) Input() core.Input {
	return core.Input{
		Up:    c.Buttons&BtnUp != 0,
		Down:  c.Buttons&BtnDown != 0,
		Left:  c.Buttons&BtnLeft != 0,
		Right: c.Buttons&BtnRight != 0,
		Fire:  c.Buttons&BtnFire != 0,
		Dash:  c.Buttons&BtnDash != 0,
		Aim:   core.V(float64(c.X), float64(c.Y)),
	}
}

// Encode writes a command to binary
func (c *Command) Encode(w io.Writer) error {
	if len(c.Param) > 0xffff {
		return fmt.Errorf("network: param too long (%d bytes)", len(c.Param))
	}
	var hdr [frameHeader]byte
	hdr[0] = frameMarker
	binary.LittleEndian.PutUint64(hdr[1:], c.Tick)
	hdr[9] = byte(c.Type)
	hdr[10] = byte(c.Buttons)
	binary.LittleEndian.PutUint32(hdr[11:], math.Float32bits(c.X))
	binary.LittleEndian.PutUint32(hdr[15:], math.Float32bits(c.Y))
	binary.LittleEndian.PutUint16(hdr[19:], uint16(len(c.Param)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := io.WriteString(w, c.Param)
	return err
}

// Decode reads a command from binary. A clean end of stream returns io.EOF;
// a frame cut short returns ErrShortFrame.
func (c *Command) Decode(r io.Reader) error {
	var hdr [frameHeader]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrShortFrame
		}
		return err
	}
	if hdr[0] != frameMarker {
		return fmt.Errorf("network: bad frame marker %#x", hdr[0])
	}
	c.Tick = binary.LittleEndian.Uint64(hdr[1:])
	c.Type = CmdType(hdr[9])
	c.Buttons = Buttons(hdr[10])
	c.X = math.Float32frombits(binary.LittleEndian.Uint32(hdr[11:]))
	c.Y = math.Float32frombits(binary.LittleEndian.Uint32(hdr[15:]))
	plen := binary.LittleEndian.Uint16(hdr[19:])
	c.Param = ""
	if plen > 0 {
		buf := make([]byte, plen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("%w: param: %v", ErrShortFrame, err)
		}
		c.Param = string(buf)
	}
	return nil
}
