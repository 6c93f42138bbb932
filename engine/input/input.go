package input

import (
	"github.com/1siamBot/code-crash/engine/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Actions are the one-shot commands pressed this frame
type Actions struct {
	Reload  bool
	Grenade bool
	Shield  bool
	Pause   bool
	Shop    bool
	Choose  int // 1-9 picks an upgrade option or shop item, 0 = none
}

// Any reports whether any action was pressed
func (a Actions) Any() bool {
	return a.Reload || a.Grenade || a.Shield || a.Pause || a.Shop || a.Choose > 0
}

// Poller tracks mouse and keyboard state per frame and turns it into
// simulation input
type Poller struct {
	// Mouse
	MouseX, MouseY   int
	LeftPressed      bool
	RightJustPressed bool

	// Keyboard
	KeysPressed map[ebiten.Key]bool
}

var heldKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
	ebiten.KeySpace,
}

var chooseKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

func NewPoller() *Poller {
	return &Poller{KeysPressed: make(map[ebiten.Key]bool)}
}

// Update should be called every frame. It returns the held input record
// and the actions pressed since the previous frame.
func (p *Poller) Update() (core.Input, Actions) {
	p.MouseX, p.MouseY = ebiten.CursorPosition()
	p.LeftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.RightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	for _, k := range heldKeys {
		p.KeysPressed[k] = ebiten.IsKeyPressed(k)
	}

	in := core.Input{
		Up:    p.KeysPressed[ebiten.KeyW] || p.KeysPressed[ebiten.KeyUp],
		Down:  p.KeysPressed[ebiten.KeyS] || p.KeysPressed[ebiten.KeyDown],
		Left:  p.KeysPressed[ebiten.KeyA] || p.KeysPressed[ebiten.KeyLeft],
		Right: p.KeysPressed[ebiten.KeyD] || p.KeysPressed[ebiten.KeyRight],
		Aim:   core.V(float64(p.MouseX), float64(p.MouseY)),
		Fire:  p.LeftPressed || p.KeysPressed[ebiten.KeySpace],
		Dash:  inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight),
	}

	act := Actions{
		Reload:  inpututil.IsKeyJustPressed(ebiten.KeyR),
		Grenade: inpututil.IsKeyJustPressed(ebiten.KeyG) || p.RightJustPressed,
		Shield:  inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
		Shop:    inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyB),
	}
	for i, k := range chooseKeys {
		if inpututil.IsKeyJustPressed(k) {
			act.Choose = i + 1
			break
		}
	}
	return in, act
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (p *Poller) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
