package core

// Input is the per-tick control record produced by the input collaborator.
// Held state (movement, fire) persists between frames; Dash is an edge and
// is true only on the frame the action was pressed.
type Input struct {
	Up, Down, Left, Right bool
	Aim                   Vec2
	Fire                  bool
	Dash                  bool
}

// Move returns the movement intent, normalized when diagonal
func (in Input) Move() Vec2 {
	var d Vec2
	if in.Up {
		d.Y--
	}
	if in.Down {
		d.Y++
	}
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if n, ok := d.Normalize(); ok {
		return n
	}
	return Vec2{}
}
