// Package replay records and plays back per-frame intent streams.
package replay

import "github.com/younwookim/skyrunner/internal/application/system"

// Version is written into every recording
const Version = "2.0"

// FrameInput records the intent of a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // MoveLeft
	R  bool `json:"r,omitempty"`  // MoveRight
	JP bool `json:"jp,omitempty"` // JumpPressed
	JR bool `json:"jr,omitempty"` // JumpReleased
	DT bool `json:"dt,omitempty"` // DropThroughPressed
}

// NewFrameInput converts an intent into a frame record
func NewFrameInput(frame int, in system.Intent) FrameInput {
	return FrameInput{
		F:  frame,
		L:  in.MoveLeft,
		R:  in.MoveRight,
		JP: in.JumpPressed,
		JR: in.JumpReleased,
		DT: in.DropThroughPressed,
	}
}

// Intent returns the recorded intent
func (f FrameInput) Intent() system.Intent {
	return system.Intent{
		MoveLeft:           f.L,
		MoveRight:          f.R,
		JumpPressed:        f.JP,
		JumpReleased:       f.JR,
		DropThroughPressed: f.DT,
	}
}

// ReplayData contains all data needed to replay a game session: the level, the
// world seed and one intent per tick.
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
