package system

import "github.com/younwookim/skyrunner/internal/domain/entity"

// Intent is the logical input for one tick. Edge fields are true only on the
// frame the edge happens.
type Intent struct {
	MoveLeft           bool
	MoveRight          bool
	JumpPressed        bool // edge
	JumpReleased       bool // edge
	DropThroughPressed bool
}

// Horizontal returns the requested horizontal direction (opposing keys cancel)
func (i Intent) Horizontal() entity.Direction {
	switch {
	case i.MoveLeft && !i.MoveRight:
		return entity.DirLeft
	case i.MoveRight && !i.MoveLeft:
		return entity.DirRight
	default:
		return entity.DirNone
	}
}

// IsZero reports whether no signal is set
func (i Intent) IsZero() bool {
	return i == Intent{}
}
